package signal

// Namespace interns textual signal paths to dense integer SignalIDs, and
// resolves/looks them up in both directions. Setup-phase single-writer:
// races during compilation are not supported, matching the thread contract
// the compiler relies on.
type Namespace struct {
	forward map[string]SignalID
	reverse map[SignalID]string
	nextID  SignalID
}

// NewNamespace creates an empty signal namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		forward: make(map[string]SignalID),
		reverse: make(map[SignalID]string),
	}
}

// Intern returns the existing id for path, or allocates and returns the
// next free id. Idempotent.
func (n *Namespace) Intern(path string) SignalID {
	if id, ok := n.forward[path]; ok {
		return id
	}
	id := n.nextID
	n.nextID++
	n.forward[path] = id
	n.reverse[id] = path
	return id
}

// Resolve returns the sentinel Invalid if path was never interned.
func (n *Namespace) Resolve(path string) SignalID {
	if id, ok := n.forward[path]; ok {
		return id
	}
	return Invalid
}

// Lookup returns the empty string if id is unknown.
func (n *Namespace) Lookup(id SignalID) string {
	return n.reverse[id]
}

// Size returns the number of interned paths.
func (n *Namespace) Size() int {
	return len(n.forward)
}

// Clear removes all entries and resets the id counter to zero.
func (n *Namespace) Clear() {
	n.forward = make(map[string]SignalID)
	n.reverse = make(map[SignalID]string)
	n.nextID = 0
}

// FunctionNamespace is the analogous interning structure over device names
// and function names, with separate id spaces for each.
type FunctionNamespace struct {
	deviceForward   map[string]DeviceID
	deviceReverse   map[DeviceID]string
	nextDeviceID    DeviceID
	functionForward map[string]FunctionID
	functionReverse map[FunctionID]string
	nextFunctionID  FunctionID
}

// NewFunctionNamespace creates an empty function namespace.
func NewFunctionNamespace() *FunctionNamespace {
	return &FunctionNamespace{
		deviceForward:   make(map[string]DeviceID),
		deviceReverse:   make(map[DeviceID]string),
		functionForward: make(map[string]FunctionID),
		functionReverse: make(map[FunctionID]string),
	}
}

// InternDevice interns a device name.
func (n *FunctionNamespace) InternDevice(name string) DeviceID {
	if id, ok := n.deviceForward[name]; ok {
		return id
	}
	id := n.nextDeviceID
	n.nextDeviceID++
	n.deviceForward[name] = id
	n.deviceReverse[id] = name
	return id
}

// InternFunction interns a function name.
func (n *FunctionNamespace) InternFunction(name string) FunctionID {
	if id, ok := n.functionForward[name]; ok {
		return id
	}
	id := n.nextFunctionID
	n.nextFunctionID++
	n.functionForward[name] = id
	n.functionReverse[id] = name
	return id
}

// ResolveDevice returns Invalid if name was never interned.
func (n *FunctionNamespace) ResolveDevice(name string) DeviceID {
	if id, ok := n.deviceForward[name]; ok {
		return id
	}
	return Invalid
}

// ResolveFunction returns Invalid if name was never interned.
func (n *FunctionNamespace) ResolveFunction(name string) FunctionID {
	if id, ok := n.functionForward[name]; ok {
		return id
	}
	return Invalid
}

// LookupDevice returns the empty string if id is unknown.
func (n *FunctionNamespace) LookupDevice(id DeviceID) string {
	return n.deviceReverse[id]
}

// LookupFunction returns the empty string if id is unknown.
func (n *FunctionNamespace) LookupFunction(id FunctionID) string {
	return n.functionReverse[id]
}

// Clear removes all entries and resets both id counters to zero.
func (n *FunctionNamespace) Clear() {
	n.deviceForward = make(map[string]DeviceID)
	n.deviceReverse = make(map[DeviceID]string)
	n.functionForward = make(map[string]FunctionID)
	n.functionReverse = make(map[FunctionID]string)
	n.nextDeviceID = 0
	n.nextFunctionID = 0
}
