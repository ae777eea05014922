package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/safetyedu/safety-edu/pkg/models"
)

const (
	pathLogin             = "api/common/Login/login"
	pathSchoolList        = "api/common/Login/getSchoolList"
	pathAuthInfo          = "api/common/Login/getAuthInfo"
	pathModuleList        = "api/portal/CellManager/getModuleList"
	pathModuleInfo        = "api/portal/CourseIndex/getModuleInfo"
	pathAddMyMoocModule   = "api/design/LearnCourse/addMyMoocModule"
	pathStatCellTime      = "api/design/LearnCourse/statStuProcessCellLogAndTimeLong"
	pathStudyTimerSummary = "api/design/LearnCourse/getMyStudyTimerSummary"
	pathStuPaper          = "api/design/PaperStudent/getStuPaper"
	pathSaveStuQuesAnswer = "api/design/PaperStudent/saveStuQuesAnswer"
	pathSubmitStuPaper    = "api/design/PaperStudent/submitStuPaper"
	pathCoursePaperInfo   = "api/design/LearnPaper/getCousePpaerInfo"
)

// SchoolList fetches the school directory. It does not need a session.
func (c *Client) SchoolList(ctx context.Context) ([]models.School, error) {
	var body struct {
		List *[]models.School `json:"list"`
	}
	if err := c.call(ctx, pathSchoolList, nil, &body); err != nil {
		return nil, err
	}
	if body.List == nil {
		return nil, missing(opName(pathSchoolList), "list")
	}
	return *body.List, nil
}

// AuthInfo returns the logged-in user
func (c *Client) AuthInfo(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.call(ctx, pathAuthInfo, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ModuleList returns stubs (ids only) of the modules assigned to the user
func (c *Client) ModuleList(ctx context.Context) ([]models.Module, error) {
	var body struct {
		List *[]struct {
			ID string `json:"id"`
		} `json:"list"`
	}
	if err := c.call(ctx, pathModuleList, nil, &body); err != nil {
		return nil, err
	}
	if body.List == nil {
		return nil, missing(opName(pathModuleList), "list")
	}

	modules := make([]models.Module, 0, len(*body.List))
	for _, m := range *body.List {
		if m.ID == "" {
			return nil, missing(opName(pathModuleList), "list[].id")
		}
		modules = append(modules, models.Module{ID: m.ID})
	}
	return modules, nil
}

// ModuleInfo returns a module with its course id and cells
func (c *Client) ModuleInfo(ctx context.Context, moduleID string) (models.Module, error) {
	params := url.Values{}
	params.Set("moduleId", moduleID)

	var body struct {
		ModuleInfo *struct {
			CourseOpenID string `json:"courseOpenId"`
		} `json:"moduleInfo"`
		CellList *[]models.Cell `json:"cellList"`
	}
	if err := c.call(ctx, pathModuleInfo, params, &body); err != nil {
		return models.Module{}, err
	}

	op := opName(pathModuleInfo)
	if body.ModuleInfo == nil || body.ModuleInfo.CourseOpenID == "" {
		return models.Module{}, missing(op, "moduleInfo.courseOpenId")
	}
	if body.CellList == nil {
		return models.Module{}, missing(op, "cellList")
	}
	for _, cell := range *body.CellList {
		if cell.ID == "" {
			return models.Module{}, missing(op, "cellList[].id")
		}
	}

	return models.Module{
		ID:           moduleID,
		CourseOpenID: body.ModuleInfo.CourseOpenID,
		Cells:        *body.CellList,
	}, nil
}

// AddMyMoocModule enrolls the user in a module. Enrolling twice is a no-op on the server.
func (c *Client) AddMyMoocModule(ctx context.Context, moduleID string) error {
	params := url.Values{}
	params.Set("moduleId", moduleID)
	return c.call(ctx, pathAddMyMoocModule, params, nil)
}

// StatStuProcessCellLogAndTimeLong records the time spent on one cell.
// The duration is sent in both the audio/video length and total length slots.
func (c *Client) StatStuProcessCellLogAndTimeLong(ctx context.Context, moduleID, courseID, cellID string, seconds int) error {
	t := strconv.Itoa(seconds)
	params := url.Values{}
	params.Set("moduleIds", moduleID)
	params.Set("courseId", courseID)
	params.Set("cellId", cellID)
	params.Set("auvideoLength", t)
	params.Set("videoTimeTotalLong", t)
	return c.call(ctx, pathStatCellTime, params, nil)
}

// MyStudyTimerSummary returns the server-side study counters
func (c *Client) MyStudyTimerSummary(ctx context.Context) (models.StudyTimerSummary, error) {
	var body struct {
		CumulativeStudyTimer  *int64 `json:"cumulativeStudyTimer"`
		CumulativeStudyCount  int    `json:"cumulativeStudyCount"`
		CumulativeStudyCourse int    `json:"cumulativeStudyCourse"`
	}
	if err := c.call(ctx, pathStudyTimerSummary, nil, &body); err != nil {
		return models.StudyTimerSummary{}, err
	}
	if body.CumulativeStudyTimer == nil {
		return models.StudyTimerSummary{}, missing(opName(pathStudyTimerSummary), "cumulativeStudyTimer")
	}
	return models.StudyTimerSummary{
		CumulativeStudyTimer:  *body.CumulativeStudyTimer,
		CumulativeStudyCount:  body.CumulativeStudyCount,
		CumulativeStudyCourse: body.CumulativeStudyCourse,
	}, nil
}

// StuPaper fetches the student's exam paper for a course
func (c *Client) StuPaper(ctx context.Context, courseID string) (models.ExamPaper, error) {
	params := url.Values{}
	params.Set("courseId", courseID)

	var body struct {
		PaperID          string `json:"paperId"`
		PaperStuID       string `json:"paperStuId"`
		PaperName        string `json:"paperName"`
		StuPaperQuesList *[]struct {
			QuesID       string   `json:"quesId"`
			QuestionType flexible `json:"questionType"`
		} `json:"stuPaperQuesList"`
	}
	if err := c.call(ctx, pathStuPaper, params, &body); err != nil {
		return models.ExamPaper{}, err
	}

	op := opName(pathStuPaper)
	switch {
	case body.PaperID == "":
		return models.ExamPaper{}, missing(op, "paperId")
	case body.PaperStuID == "":
		return models.ExamPaper{}, missing(op, "paperStuId")
	case body.StuPaperQuesList == nil:
		return models.ExamPaper{}, missing(op, "stuPaperQuesList")
	}

	paper := models.ExamPaper{
		PaperID:    body.PaperID,
		PaperStuID: body.PaperStuID,
		PaperName:  body.PaperName,
		Questions:  make([]models.Question, 0, len(*body.StuPaperQuesList)),
	}
	for _, q := range *body.StuPaperQuesList {
		if q.QuesID == "" {
			return models.ExamPaper{}, missing(op, "stuPaperQuesList[].quesId")
		}
		paper.Questions = append(paper.Questions, models.Question{
			QuesID: q.QuesID,
			Type:   questionType(int(q.QuestionType)),
		})
	}
	return paper, nil
}

// SaveStuQuesAnswer records the answer to one question of an attempt
func (c *Client) SaveStuQuesAnswer(ctx context.Context, paperStuID, paperID, quesID, answer string) error {
	payload, err := json.Marshal(struct {
		QuesID string `json:"quesId"`
		Answer string `json:"answer"`
	}{QuesID: quesID, Answer: answer})
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("paperStuId", paperStuID)
	params.Set("paperId", paperID)
	params.Set("quesId", quesID)
	params.Set("answerJson", string(payload))
	return c.call(ctx, pathSaveStuQuesAnswer, params, nil)
}

// SubmitStuPaper finalizes an attempt. Only the HTTP status is checked.
func (c *Client) SubmitStuPaper(ctx context.Context, paperStuID, paperID string) error {
	params := url.Values{}
	params.Set("paperStuId", paperStuID)
	params.Set("paperId", paperID)

	res, err := c.do(ctx, pathSubmitStuPaper, params, true)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return &TransportError{Op: opName(pathSubmitStuPaper), Status: res.StatusCode}
	}
	return nil
}

// CoursePaperInfo returns the graded attempts of a course, most recent first.
// An account that never took the exam gets an empty list.
func (c *Client) CoursePaperInfo(ctx context.Context, courseID string) ([]models.PaperResult, error) {
	params := url.Values{}
	params.Set("courseId", courseID)

	var body struct {
		PaperStudentList []models.PaperResult `json:"paperStudentList"`
	}
	if err := c.call(ctx, pathCoursePaperInfo, params, &body); err != nil {
		return nil, err
	}
	return body.PaperStudentList, nil
}

func questionType(n int) models.QuestionType {
	switch n {
	case 1:
		return models.QuestionSingle
	case 2:
		return models.QuestionMultiple
	case 3:
		return models.QuestionJudgment
	default:
		return models.QuestionUnknown
	}
}

// flexible decodes an integer sent either as a JSON number or a numeric string.
// Anything else decodes to 0.
type flexible int

func (f *flexible) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	i, err := n.Int64()
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexible(i)
	return nil
}
