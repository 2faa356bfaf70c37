package recursive

type Tree map[string]Tree

type List []List

type chain struct {
	*chain
	Label string `json:"label"`
}

type ChainDto struct {
	*ChainDto
	chain
	Name string `json:"name"`
}

type ForestDto struct {
	Tree  Tree `json:"tree"`
	Items List `json:"items"`
}
