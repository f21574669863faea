package process

// Tree is the set of PIDs made of a root process and all of its descendants.
// PIDs keeps discovery order (root first, then breadth-first).
type Tree struct {
	PIDs    []ProcessID
	members map[ProcessID]struct{}
}

// NewTree creates a tree holding only root
func NewTree(root ProcessID) Tree {
	t := Tree{members: make(map[ProcessID]struct{})}
	t.add(root)
	return t
}

func (t *Tree) add(pid ProcessID) bool {
	if _, exists := t.members[pid]; exists {
		return false
	}
	t.members[pid] = struct{}{}
	t.PIDs = append(t.PIDs, pid)
	return true
}

// Contains reports whether pid is the root or one of its descendants
func (t Tree) Contains(pid ProcessID) bool {
	_, ok := t.members[pid]
	return ok
}

// Len returns the number of processes in the tree
func (t Tree) Len() int {
	return len(t.PIDs)
}

// BuildTree collects rootPID and every descendant of it from a process snapshot
// by walking the parent-to-children edges breadth first. PID reuse can produce
// cycles in the snapshot, each PID is visited at most once.
func BuildTree(rootPID ProcessID, procs []ProcessInfo) Tree {
	childrenMap, _ := buildMaps(procs)

	tree := NewTree(rootPID)
	queue := append([]ProcessID(nil), childrenMap[rootPID]...)

	for len(queue) > 0 {
		pid := queue[0]
		queue = queue[1:]

		if !tree.add(pid) {
			continue
		}
		queue = append(queue, childrenMap[pid]...)
	}

	return tree
}

// Build a map of parent-to-children relationships and a PID lookup
func buildMaps(procs []ProcessInfo) (map[ProcessID][]ProcessID, map[ProcessID]ProcessInfo) {
	childrenMap := make(map[ProcessID][]ProcessID)
	processMap := make(map[ProcessID]ProcessInfo, len(procs))

	for _, proc := range procs {
		processMap[proc.PID] = proc
		if proc.PPID == proc.PID {
			// System Idle reports itself as its own parent
			continue
		}
		childrenMap[proc.PPID] = append(childrenMap[proc.PPID], proc.PID)
	}

	return childrenMap, processMap
}
