package logic

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/BxCppDev/Bayeux-sub017/pkg/metrics"
	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/formula"
)

// Builder turns formula trees into gate graphs.
type Builder struct {
	factory *Factory
	logger  logrus.FieldLogger
}

type BuilderOption func(*Builder)

// WithFactory makes the builder create gates from f instead of the
// default factory.
func WithFactory(f *Factory) BuilderOption {
	return func(b *Builder) {
		b.factory = f
	}
}

func WithLogger(logger logrus.FieldLogger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{}
	for _, option := range options {
		option(b)
	}
	if b.factory == nil {
		b.factory = DefaultFactory()
	}
	if b.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		b.logger = logger
	}
	return b
}

// Build builds the graph described by ast with gates bound to owner and
// validates it. Errors locating an invalid gate are *BuildError values.
func Build(ast *formula.AST, owner Owner) (Node, error) {
	return NewBuilder().Build(ast, owner)
}

func (b *Builder) Build(ast *formula.AST, owner Owner) (root Node, err error) {
	defer func() {
		metrics.EmitBuild(err)
	}()
	if !ast.IsValid() {
		return nil, errors.New("cannot build logic from an invalid formula tree")
	}
	root, err = (&graphBuild{Builder: b, owner: owner}).build(ast.Root)
	if err != nil {
		return nil, err
	}
	if err := Validate(root); err != nil {
		b.logger.WithError(err).WithField("formula", ast.String()).Debug("built logic is not valid")
		return nil, err
	}
	return root, nil
}

// BuildFormula parses expr and builds the resulting tree.
func (b *Builder) BuildFormula(expr string, owner Owner) (Node, error) {
	ast, err := formula.Parse(expr)
	metrics.EmitParse(err)
	if err != nil {
		return nil, err
	}
	return b.Build(ast, owner)
}

// graphBuild walks one formula tree. path holds the ports followed from
// the root to the node being built.
type graphBuild struct {
	*Builder
	owner Owner
	path  []int
}

func (g *graphBuild) fail(guid string, err error) error {
	return &BuildError{GUID: guid, Path: append([]int(nil), g.path...), Err: err}
}

func (g *graphBuild) build(n formula.Node) (Node, error) {
	switch n := n.(type) {
	case *formula.Op:
		if n == nil {
			return nil, g.fail("", errors.New("missing formula node"))
		}
		gate, ok := g.factory.Create(n.Symbol, g.owner)
		if !ok {
			return nil, g.fail(n.Symbol, &UnknownGateError{GUID: n.Symbol})
		}
		g.logger.WithField("guid", n.Symbol).WithField("inputs", len(n.Children)).Debug("creating logic")
		for port, child := range n.Children {
			g.path = append(g.path, port)
			input, err := g.build(child)
			g.path = g.path[:len(g.path)-1]
			if err != nil {
				return nil, err
			}
			gate.Connect(port, input)
		}
		return gate, nil
	case *formula.Slot:
		if n == nil {
			return nil, g.fail(SlotGUID, errors.New("missing formula node"))
		}
		gate, ok := g.factory.Create(SlotGUID, g.owner)
		if !ok {
			return nil, g.fail(SlotGUID, &UnknownGateError{GUID: SlotGUID})
		}
		setter, ok := gate.(DependeeSetter)
		if !ok {
			return nil, g.fail(SlotGUID, errors.Errorf("logic %q registered as %q cannot hold a dependee slot", gate.GUID(), SlotGUID))
		}
		g.logger.WithField("slot", n.ID).Debug("creating slot logic")
		setter.SetDependeeSlot(n.ID)
		return gate, nil
	}
	return nil, g.fail("", errors.Errorf("unexpected formula node %T", n))
}
