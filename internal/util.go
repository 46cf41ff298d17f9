package internal

// ReconstructPath walks cameFrom backwards from current until a node without
// a predecessor is reached. The result starts at current and ends at that
// root node. cameFrom must be acyclic.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
) []NodeType {
	path := []NodeType{current}
	for {
		previousNode, exists := cameFrom[current]
		if !exists {
			return path
		}
		path = append(path, previousNode)
		current = previousNode
	}
}

// Reverse returns a reversed copy of path.
func Reverse[NodeType any](path []NodeType) []NodeType {
	out := make([]NodeType, len(path))
	for i, j := 0, len(path)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = path[j]
	}
	return out
}
