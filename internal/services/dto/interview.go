package dto

// InterviewPrepRequest asks for interview preparation material for one job.
type InterviewPrepRequest struct {
	JobID string `json:"job_id" binding:"required"`
}

type TechnicalQuestion struct {
	Question                string `json:"question"`
	ExpectedAnswerKeyPoints string `json:"expected_answer_key_points"`
	Difficulty              string `json:"difficulty"`
}

type BehavioralQuestion struct {
	Question string `json:"question"`
	Tip      string `json:"tip"`
}

// InterviewPrep is the structured material generated by the LLM, focused
// on the gaps between the job requirements and the candidate's resume.
type InterviewPrep struct {
	TechnicalQuestions  []TechnicalQuestion  `json:"technical_questions"`
	BehavioralQuestions []BehavioralQuestion `json:"behavioral_questions"`
	ResumeFeedback      string               `json:"resume_feedback"`
}
