package prompt

import (
	"strings"

	"voice-journal-be/internal/constant"
	"voice-journal-be/pkg/rag/mode"
)

var templates = map[mode.Mode]string{
	mode.TeacherMode:      constant.TeacherModePrompt,
	mode.ExamMode:         constant.ExamModePrompt,
	mode.AnswerEvaluator:  constant.AnswerEvaluatorPrompt,
	mode.ConceptExplainer: constant.ConceptExplainerPrompt,
}

// Compose builds the generation prompt. It is a pure function of its inputs.
func Compose(context, query, priorAnswer string, m mode.Mode) string {
	var prompt strings.Builder

	prompt.WriteString(constant.AssistantPreamble)
	prompt.WriteString("\n\n")

	writeSection(&prompt, "# Context", context)

	prior := strings.TrimSpace(priorAnswer)
	if prior == "" {
		prior = constant.NoPriorAnswerPlaceholder
	}
	writeSection(&prompt, "# Last Assistant Response", prior)

	writeSection(&prompt, "# Instruction", Instruction(m, context, query))
	writeSection(&prompt, "# Student Query", query)

	prompt.WriteString("# Answer:\n")
	return prompt.String()
}

// Instruction renders the template for m, or "" when m is None.
func Instruction(m mode.Mode, context, query string) string {
	template, ok := templates[m]
	if !ok {
		return ""
	}
	return Fill(template, map[string]string{
		constant.PlaceholderText:   strings.TrimSpace(context),
		constant.PlaceholderAnswer: strings.TrimSpace(query),
	})
}

// Fill substitutes placeholders in a single pass, so substituted values are
// never themselves expanded.
func Fill(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, k, v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}

func writeSection(prompt *strings.Builder, heading, body string) {
	prompt.WriteString(heading)
	prompt.WriteString("\n")
	prompt.WriteString(strings.TrimSpace(body))
	prompt.WriteString("\n\n")
}
