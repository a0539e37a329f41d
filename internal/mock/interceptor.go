package mock

import "sync"

// Interceptor records calls made against a mock so tests can assert on
// what happened and in which order.
type Interceptor struct {
	m      sync.Mutex
	Events map[string][]interface{}
	order  []string
}

func NewInterceptor() *Interceptor {
	return &Interceptor{
		Events: make(map[string][]interface{}),
	}
}

func (i *Interceptor) Reset() {
	i.m.Lock()
	defer i.m.Unlock()

	i.Events = make(map[string][]interface{})
	i.order = nil
}

func (i *Interceptor) Record(name string, args []interface{}) {
	i.m.Lock()
	defer i.m.Unlock()

	events := i.Events
	v, ok := events[name]
	if !ok {
		v = []interface{}{}
	}

	events[name] = append(v, interface{}(args))
	i.order = append(i.order, name)
}

// Calls returns how many times name was recorded.
func (i *Interceptor) Calls(name string) int {
	i.m.Lock()
	defer i.m.Unlock()
	return len(i.Events[name])
}

// Order returns the recorded call names in invocation order.
func (i *Interceptor) Order() []string {
	i.m.Lock()
	defer i.m.Unlock()
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}
