package usecase

import "github.com/MistByteX/predictor/internal/domain"

// AskTemplate is the template name used by the ask command.
const AskTemplate = "ask"

// builtinAsk backs the ask command when the home has no ask.md yet.
var builtinAsk = domain.Template{
	Name:        AskTemplate,
	Description: "自由提问",
	System:      "你是一名严谨的预测分析助手，请用中文回答。",
	Variables: []domain.VariableSpec{
		{Name: "question", Description: "要预测或咨询的问题", Required: true},
	},
	Body: "# 问题\n\n{question}\n\n请给出结论、主要依据、可能的变数与风险以及建议。\n",
}
