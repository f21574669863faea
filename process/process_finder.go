package process

// Snapshotter captures the system process and thread tables at a point in time
type Snapshotter interface {
	// Processes returns every process currently known to the system
	Processes() ([]ProcessInfo, error)

	// Threads returns every thread currently known to the system
	Threads() ([]ThreadInfo, error)
}

// ProcessHierarchy defines operations for working with process relationships
type ProcessHierarchy interface {
	// ParentOf returns the parent PID of the given process
	ParentOf(pid ProcessID) (ProcessID, error)

	// Tree returns the given PID and all of its descendants
	Tree(rootPID ProcessID) (Tree, error)

	// GetProcessTree returns a tree-like representation of processes starting from a root PID
	GetProcessTree(rootPID ProcessID) (*ProcessTreeNode, error)

	// ThreadsOf returns the threads owned by any process in the tree
	ThreadsOf(tree Tree) ([]ThreadID, error)
}

// Finder implements ProcessHierarchy on top of a Snapshotter. Every call takes a
// fresh snapshot; nothing is cached between calls.
type Finder struct {
	Snap Snapshotter
}

var _ ProcessHierarchy = (*Finder)(nil)

// NewFinder creates a Finder reading from snap
func NewFinder(snap Snapshotter) *Finder {
	return &Finder{Snap: snap}
}

// ParentOf returns the parent PID of pid
func (f *Finder) ParentOf(pid ProcessID) (ProcessID, error) {
	procs, err := f.Snap.Processes()
	if err != nil {
		return 0, err
	}
	for _, p := range procs {
		if p.PID == pid {
			return p.PPID, nil
		}
	}
	return 0, ErrProcessNotFound
}

// Tree returns rootPID plus every descendant found in the current snapshot
func (f *Finder) Tree(rootPID ProcessID) (Tree, error) {
	procs, err := f.Snap.Processes()
	if err != nil {
		// the root itself is always part of the tree
		return NewTree(rootPID), err
	}
	return BuildTree(rootPID, procs), nil
}

// GetProcessTree returns a tree-like representation of processes starting from a root PID
func (f *Finder) GetProcessTree(rootPID ProcessID) (*ProcessTreeNode, error) {
	procs, err := f.Snap.Processes()
	if err != nil {
		return nil, err
	}

	childrenMap, processMap := buildMaps(procs)
	root, exists := processMap[rootPID]
	if !exists {
		return nil, ErrProcessNotFound
	}

	return buildProcessTree(root, childrenMap, processMap, map[ProcessID]bool{}), nil
}

// ThreadsOf returns every thread owned by a process in tree
func (f *Finder) ThreadsOf(tree Tree) ([]ThreadID, error) {
	threads, err := f.Snap.Threads()
	if err != nil {
		return nil, err
	}

	var out []ThreadID
	for _, t := range threads {
		if tree.Contains(t.OwnerPID) {
			out = append(out, t.TID)
		}
	}
	return out, nil
}

// Helper function to build a process tree recursively
func buildProcessTree(procInfo ProcessInfo, childrenMap map[ProcessID][]ProcessID, processMap map[ProcessID]ProcessInfo, visited map[ProcessID]bool) *ProcessTreeNode {
	visited[procInfo.PID] = true
	node := &ProcessTreeNode{
		Process:  procInfo,
		Children: []*ProcessTreeNode{},
	}

	for _, childPID := range childrenMap[procInfo.PID] {
		if visited[childPID] {
			continue
		}
		if childProc, exists := processMap[childPID]; exists {
			node.Children = append(node.Children, buildProcessTree(childProc, childrenMap, processMap, visited))
		}
	}

	return node
}
