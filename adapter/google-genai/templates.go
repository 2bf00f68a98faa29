package googlegenai

const baselineTemplate = `
I will ask you a question about a software project. Answer from your own
knowledge. Do not speculate about details you do not know; if you are not
sure, say so briefly.

Answer the question according to the provided schema. Schema defines a text
field and a relevant_snippets field.

The text field is a string. Text field should contain the full answer to the
question.

The relevant_snippets field must be an empty list since no context is
provided.

Question:
%s
`

const enhancedTemplate = `
I will ask you a question and will provide some additional context
information taken from the project's llms.txt documentation. Assume the
context information is factual and correct and prefer it over any other
information.

Context is a list of strings, each on a separate line.

If the question relates to the context, answer it using the context.
If the context has nothing relevant to the question, answer from your own
knowledge and return an empty relevant_snippets list.

Answer the question according to the provided schema. Schema defines a text
field and a relevant_snippets field.

The text field is a string. Text field should contain the full answer to the
question.

The relevant_snippets field should contain the list of relevant lines from
the context that were used to answer the question, copied exactly.

Question:
%s

Context:
%s
`
