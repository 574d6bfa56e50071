package medapi

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailBody struct {
	Email string `json:"email"`
}

type resetPasswordBody struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type availabilityData struct {
	Available bool `json:"available"`
}

type messageBody struct {
	Message string `json:"message"`
}

type replyData struct {
	Reply string `json:"reply"`
}

type analysisData struct {
	Analysis string `json:"analysis"`
}

type roleBody struct {
	Role string `json:"role"`
}

type lockoutBody struct {
	Locked bool `json:"locked"`
}

type linesData struct {
	Lines []string `json:"lines"`
}
