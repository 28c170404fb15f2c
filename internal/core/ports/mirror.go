package ports

// Mirror replicates a tool definition tree into the environment's share
// directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=mirror.go -destination=mocks/mock_mirror.go -package=mocks
type Mirror interface {
	// Sync makes dst an exact copy of src. Files already identical in dst
	// may be left in place.
	Sync(src, dst string) error
}
