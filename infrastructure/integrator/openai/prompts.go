package openai

// SystemPrompt define o papel do modelo
const SystemPrompt = "You are a financial forecasting expert."

// CommentaryPromptTemplate recebe os registros recentes serializados em JSON
const CommentaryPromptTemplate = `Analyze the following revenue data and provide a short commentary for a finance audience.
Cover:
- the overall trend and any notable changes in growth
- seasonality or recurring patterns you can identify
- anomalies or outliers worth investigating
- what the recent trajectory suggests for the coming quarters and key risks to that outlook

Keep it concise and use plain language.

Revenue data (most recent %d records, JSON):
%s`
