package domain

// Persona is the system prompt one agent answers with.
type Persona struct {
	Name   string
	System string
}

// DefaultPersonas is used when agents.yaml is missing or empty.
func DefaultPersonas() []Persona {
	return []Persona{
		{Name: "理性分析师", System: "你是一名理性的分析师，请基于事实与数据推理，给出结论、依据和不确定性。"},
		{Name: "风险评估师", System: "你是一名谨慎的风险评估师，请优先识别风险因素与失败条件，给出保守结论。"},
		{Name: "乐观策略师", System: "你是一名积极的策略师，请寻找机会与有利条件，给出可执行的建议。"},
	}
}
