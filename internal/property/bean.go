package property

import (
	"fmt"
	"slices"

	"github.com/danmuck/capkit/internal/changebus"
)

// Bean groups observable cells that report to one shared bus, the way a
// change-aware object exposes several observed properties behind a single
// listener registry.
type Bean struct {
	name  string
	bus   *changebus.Bus
	props []string
}

func NewBean(name string, opts ...changebus.Option) *Bean {
	return &Bean{name: name, bus: changebus.New(opts...)}
}

func (b *Bean) Name() string { return b.name }

func (b *Bean) Bus() *changebus.Bus { return b.bus }

func (b *Bean) AddListener(l changebus.Listener, opts ...changebus.RegisterOption) changebus.Handle {
	return b.bus.Register(l, opts...)
}

func (b *Bean) RemoveListener(h changebus.Handle) bool {
	return b.bus.Unregister(h)
}

// Properties lists the observed property names in declaration order.
func (b *Bean) Properties() []string {
	return slices.Clone(b.props)
}

// Observe declares an observable property on the bean.
func Observe[V any](b *Bean, name string, initial V, opts ...Option[V]) (*Cell[V], error) {
	if slices.Contains(b.props, name) {
		return nil, fmt.Errorf("%w: %s already declares property %s", ErrInvalidCell, b.name, name)
	}
	cell, err := NewObservable(name, initial, b.bus, opts...)
	if err != nil {
		return nil, err
	}
	b.props = append(b.props, name)
	return cell, nil
}
