package domain

// Sentence is an example sentence with its translation and known vocabulary
type Sentence struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
	Words       []Word `json:"words"`
	Index       int    `json:"index"`
}

// Summary describes the outcome of one extraction pass
type Summary struct {
	Words             int
	Sentences         int
	ByType            map[WordType]int
	UntranslatedWords int
	SourceLength      int
}
