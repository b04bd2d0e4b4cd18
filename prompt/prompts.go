package prompt

const contextUtilizationInstruction = `You are evaluating how well an AI answer makes use of the retrieved context it was given.

Read the question, the retrieved context and the answer. Judge what fraction of the
information in the answer is grounded in, and makes effective use of, the context.
An answer that ignores the context or relies on outside knowledge scores low.
An answer built from the relevant parts of the context scores high.

Respond with a single number between 0.0 and 1.0 and nothing else.`

const contextRelevancyInstruction = `You are evaluating the relevance of retrieved context to a user question.

Read the question and the retrieved context. Judge how much of the context is
relevant and necessary to answer the question. Context that is off-topic or
mostly filler scores low.

Respond with a single number between 0.0 and 1.0 and nothing else.`

const responseRelevancyInstruction = `You are evaluating whether an AI answer addresses the user question.

Read the question and the answer. Judge how directly and completely the answer
responds to what was asked. Evasive, incomplete or off-topic answers score low.

Respond with a single number between 0.0 and 1.0 and nothing else.`

// ContextUtilization returns the prompt used by the Context Utilization metric
func ContextUtilization() *Prompt {
	return Must(New("context_utilization", contextUtilizationInstruction,
		WithExamples(
			Example{
				Inputs: map[string]string{
					"question": "What is the capital of France?",
					"context":  "Paris is the capital and most populous city of France.",
					"answer":   "The capital of France is Paris.",
				},
				Output: "1.0",
			},
			Example{
				Inputs: map[string]string{
					"question": "When was the Eiffel Tower completed?",
					"context":  "The Eiffel Tower is a wrought-iron lattice tower in Paris. It was completed in 1889.",
					"answer":   "It is made of steel and was designed by a committee.",
				},
				Output: "0.0",
			},
		),
	))
}

// ContextRelevancy returns the prompt used by the Context Relevancy metric
func ContextRelevancy() *Prompt {
	return Must(New("context_relevancy", contextRelevancyInstruction,
		WithInputKeys("question", "context"),
	))
}

// ResponseRelevancy returns the prompt used by the Response Relevancy metric
func ResponseRelevancy() *Prompt {
	return Must(New("response_relevancy", responseRelevancyInstruction,
		WithInputKeys("question", "answer"),
	))
}
