package calc

import (
	"fmt"
	"slices"
	"sync"
)

// CalculatorFactory is a concurrency-safe registry of calculators keyed by
// name.
type CalculatorFactory interface {
	// Register adds c under name, replacing any previous entry.
	Register(name string, c Calculator)
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// MustGet is Get that panics on an unknown name.
	MustGet(name string) Calculator
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every calculator in List order.
	GetAll() []Calculator
}

// DefaultFactory is the map-backed CalculatorFactory.
type DefaultFactory struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
}

// NewFactory returns an empty factory.
func NewFactory() *DefaultFactory {
	return &DefaultFactory{calculators: make(map[string]Calculator)}
}

// optionalCalculators holds constructors registered by files behind build
// tags, such as the gmp calculator.
var optionalCalculators []func() Calculator

// NewDefaultFactory returns a factory holding the built-in calculators and
// those enabled by build tags.
func NewDefaultFactory() *DefaultFactory {
	f := NewFactory()
	for _, c := range []Calculator{
		NewKaratsubaCalculator(),
		NewSequentialCalculator(),
		NewSchoolbookCalculator(),
	} {
		f.Register(c.Name(), c)
	}
	for _, newCalc := range optionalCalculators {
		c := newCalc()
		f.Register(c.Name(), c)
	}
	return f
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide factory of built-in calculators.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() { globalFactory = NewDefaultFactory() })
	return globalFactory
}

func (f *DefaultFactory) Register(name string, c Calculator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calculators[name] = c
}

func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, ok := f.calculators[name]
	if !ok {
		return nil, fmt.Errorf("unknown calculator %q", name)
	}
	return c, nil
}

func (f *DefaultFactory) MustGet(name string) Calculator {
	c, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return c
}

func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.calculators))
	for name := range f.calculators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (f *DefaultFactory) GetAll() []Calculator {
	names := f.List()
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make([]Calculator, 0, len(names))
	for _, name := range names {
		if c, ok := f.calculators[name]; ok {
			all = append(all, c)
		}
	}
	return all
}
