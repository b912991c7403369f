package task

type CreateTaskRequest struct {
	Text string `json:"text"`
}

type TaskResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}
