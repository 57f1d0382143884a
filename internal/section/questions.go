package section

import (
	"github.com/gorewood/readmegen/internal/prompt"
)

// Minimum sizes for operator-supplied content.
const (
	minTitleChars = 3
	minProseLines = 1
	minProseChars = 80
)

// QuestionsFor returns the questions asked to fill a section, or nil for
// sections that are generated rather than asked (the outline).
func QuestionsFor(id string, licenses []string) []prompt.Question {
	switch id {
	case TOC, Header:
		return nil
	case Title:
		return []prompt.Question{{
			Name:     Title,
			Type:     prompt.Input,
			Message:  "What's the title of your project?",
			Validate: prompt.MinLength(minTitleChars, "Title should be at least 3 characters long."),
		}}
	case License:
		return []prompt.Question{{
			Name:    License,
			Type:    prompt.List,
			Message: "What license do you want to choose for your project?\n(Please see https://choosealicense.com/licenses/ for further info)",
			Choices: prompt.Strings(licenses...),
		}}
	default:
		return []prompt.Question{{
			Name:     id,
			Type:     prompt.Editor,
			Message:  proseMessage(id),
			Validate: prompt.MinText(minProseLines, minProseChars),
		}}
	}
}

func proseMessage(id string) string {
	switch id {
	case Description:
		return "Please write a short description for your project.\n(Enter at least 1 line of 80 characters)"
	case Installation:
		return "Please write the installation instructions of your project."
	case Usage:
		return "Please provide information on how to use your project."
	case Contributing:
		return "Please provide information on how to contribute to your project."
	case Tests:
		return "Please provide details on how to run tests in your project."
	case Questions:
		return "Please include FAQs for your project."
	default:
		return "Please write the " + DisplayLabel(id) + " section of your project."
	}
}
