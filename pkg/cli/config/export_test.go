package config

// NewJiraForTest creates a Jira config for testing purposes
func NewJiraForTest(baseURL, apiKey, fieldID, project string) *Jira {
	return &Jira{
		baseURL: baseURL,
		apiKey:  apiKey,
		fieldID: fieldID,
		project: project,
	}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID string) *Slack {
	return &Slack{
		botToken:  botToken,
		channelID: channelID,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string, debug, silent bool) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
		debug:  debug,
		silent: silent,
	}
}
