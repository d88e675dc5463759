package dependency

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o ../../fakes/fake_registry.go . Registry

// Registry answers existence and activation queries about configuration
// variants, identified by their full path.
type Registry interface {
	HasVariant(path string) bool
	IsActiveVariant(path string) bool
}
