package dto

type TagCountResponse struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type KnowledgeNodeResponse struct {
	Id    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
	Size  int    `json:"size"`
}

type KnowledgeEdgeResponse struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Label    string  `json:"label"`
	Weight   int     `json:"weight"`
	Strength float64 `json:"strength"`
}

type KnowledgeMapResponse struct {
	Nodes []KnowledgeNodeResponse `json:"nodes"`
	Edges []KnowledgeEdgeResponse `json:"edges"`
}
