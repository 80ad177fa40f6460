package drawer

// Drawer renders a pipeline's step chain for inspection.
type Drawer interface {
	// AddStep adds a step node to the chain, in order.
	AddStep(stepName string) error
	// AddLink adds a link between two step nodes.
	AddLink(parentStepName, childStepName string) error
	// Label attaches a human-readable label to a step node.
	Label(stepName, label string) error
	// Draw writes the rendered chain.
	Draw() error
}
