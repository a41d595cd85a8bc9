package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/studio-ops-api/internal/constants"
	"github.com/yukikurage/studio-ops-api/internal/database"
	"github.com/yukikurage/studio-ops-api/internal/dto"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/pdf"
	"github.com/yukikurage/studio-ops-api/internal/realtime"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"github.com/yukikurage/studio-ops-api/internal/services"
	"gorm.io/gorm"
)

// HandlerTestSuite runs the page handlers against a sqlite file
type HandlerTestSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	projects  *ProjectHandler
	tasks     *TaskHandler
	assets    *AssetHandler
	feedback  *FeedbackHandler
	invoices  *InvoiceHandler
	team      *TeamHandler
	settings  *SettingsHandler
	dashboard *DashboardHandler

	admin  services.Session
	member services.Session
	client services.Session
}

func (suite *HandlerTestSuite) SetupTest() {
	var err error
	suite.db, err = database.OpenSQLite(filepath.Join(suite.T().TempDir(), "studio.db"))
	suite.Require().NoError(err)
	suite.Require().NoError(database.AutoMigrate(suite.db))
	suite.ctx = context.Background()

	gin.SetMode(gin.TestMode)

	userRepo := repository.NewUserRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	assetRepo := repository.NewAssetRepository(suite.db)
	folderRepo := repository.NewFolderRepository(suite.db)
	invoiceRepo := repository.NewInvoiceRepository(suite.db)
	badgeRepo := repository.NewBadgeRepository(suite.db)

	broker := realtime.NewBroker()
	activity := services.NewActivityService(repository.NewActivityRepository(suite.db), broker)
	notifications := services.NewNotificationService(repository.NewNotificationRepository(suite.db), userRepo, nil)

	suite.projects = NewProjectHandler(services.NewProjectService(projectRepo, taskRepo, userRepo))
	suite.tasks = NewTaskHandler(services.NewTaskService(taskRepo, projectRepo, userRepo, activity, notifications, nil))
	suite.assets = NewAssetHandler(
		services.NewAssetService(assetRepo, projectRepo, folderRepo, activity),
		services.NewFolderService(folderRepo, projectRepo),
	)
	suite.feedback = NewFeedbackHandler(services.NewFeedbackService(repository.NewCommentRepository(suite.db), assetRepo, taskRepo, projectRepo, activity))
	suite.invoices = NewInvoiceHandler(
		services.NewInvoiceService(invoiceRepo, userRepo, projectRepo, services.NewSequenceNumberGenerator(invoiceRepo)),
		pdf.NewRenderer(),
	)
	suite.team = NewTeamHandler(services.NewTeamService(userRepo, badgeRepo, activity), broker)
	suite.settings = NewSettingsHandler(services.NewUserService(userRepo, badgeRepo), notifications)
	suite.dashboard = NewDashboardHandler(services.NewDashboardService(projectRepo, taskRepo, invoiceRepo))

	suite.admin = suite.createUser("admin@studio.test", models.UserRoleAdmin)
	suite.member = suite.createUser("member@studio.test", models.UserRoleTeamMember)
	suite.client = suite.createUser("client@acme.test", models.UserRoleClient)
}

func (suite *HandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *HandlerTestSuite) createUser(email string, role models.UserRole) services.Session {
	user := &models.User{Email: email, FullName: email, Role: role}
	suite.Require().NoError(suite.db.Create(user).Error)
	return services.Session{UserID: user.ID, Role: role}
}

func (suite *HandlerTestSuite) createProject(name string, clientID *string) *models.Project {
	project := &models.Project{Name: name, Status: models.ProjectStatusActive, CreatedBy: suite.admin.UserID, ClientID: clientID}
	suite.Require().NoError(suite.db.Create(project).Error)
	return project
}

func (suite *HandlerTestSuite) createTask(projectID, title string) *models.Task {
	task := &models.Task{ProjectID: projectID, Title: title, Status: models.TaskStatusTodo, Priority: models.TaskPriorityMedium, CreatedBy: suite.admin.UserID}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

// authContext builds a request context as Authenticate would leave it
func (suite *HandlerTestSuite) authContext(method, url string, body interface{}, sess services.Session) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, sess.UserID)
	c.Set(constants.ContextKeyUserRole, sess.Role)
	return c, w
}

func withParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (suite *HandlerTestSuite) TestListTasks_Paginated() {
	project := suite.createProject("Brand refresh", nil)
	suite.createTask(project.ID, "Moodboard")
	suite.createTask(project.ID, "Logo sketches")

	c, w := suite.authContext(http.MethodGet, "/tasks?page=1&limit=1", nil, suite.member)
	suite.tasks.ListTasks(c)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.TaskListResponse
	suite.decode(w, &response)
	suite.Len(response.Tasks, 1)
	suite.Require().NotNil(response.Pagination)
	suite.Equal(int64(2), response.Pagination.Total)
	suite.True(response.Pagination.HasMore)
}

func (suite *HandlerTestSuite) TestListTasks_UnpaginatedHasNoMetadata() {
	project := suite.createProject("Brand refresh", nil)
	suite.createTask(project.ID, "Moodboard")

	c, w := suite.authContext(http.MethodGet, "/tasks", nil, suite.member)
	suite.tasks.ListTasks(c)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.TaskListResponse
	suite.decode(w, &response)
	suite.Len(response.Tasks, 1)
	suite.Nil(response.Pagination)
}

func (suite *HandlerTestSuite) TestListTasks_InvalidStatus() {
	c, w := suite.authContext(http.MethodGet, "/tasks?status=blocked", nil, suite.member)
	suite.tasks.ListTasks(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTask_Defaults() {
	project := suite.createProject("Brand refresh", nil)

	c, w := suite.authContext(http.MethodPost, "/tasks", map[string]interface{}{
		"project_id": project.ID,
		"title":      "  Moodboard  ",
	}, suite.member)
	suite.tasks.CreateTask(c)

	suite.Equal(http.StatusCreated, w.Code)
	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal("Moodboard", task.Title)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
	suite.Equal("Brand refresh", task.ProjectName)
}

func (suite *HandlerTestSuite) TestCreateTask_Errors() {
	project := suite.createProject("Brand refresh", nil)

	c, w := suite.authContext(http.MethodPost, "/tasks", map[string]interface{}{"project_id": project.ID}, suite.member)
	suite.tasks.CreateTask(c)
	suite.Equal(http.StatusBadRequest, w.Code)

	c, w = suite.authContext(http.MethodPost, "/tasks", map[string]interface{}{"project_id": project.ID, "title": "Moodboard"}, suite.client)
	suite.tasks.CreateTask(c)
	suite.Equal(http.StatusForbidden, w.Code)

	c, w = suite.authContext(http.MethodPost, "/tasks", map[string]interface{}{"project_id": "missing", "title": "Moodboard"}, suite.member)
	suite.tasks.CreateTask(c)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTask_MovesCard() {
	project := suite.createProject("Brand refresh", nil)
	task := suite.createTask(project.ID, "Moodboard")

	c, w := suite.authContext(http.MethodPatch, "/tasks/"+task.ID, map[string]interface{}{
		"status":      "review",
		"order_index": 3,
	}, suite.member)
	withParam(c, "id", task.ID)
	suite.tasks.UpdateTask(c)

	suite.Equal(http.StatusOK, w.Code)
	var updated dto.TaskDTO
	suite.decode(w, &updated)
	suite.Equal(models.TaskStatusReview, updated.Status)
	suite.Equal(3, updated.OrderIndex)
}

func (suite *HandlerTestSuite) TestDeleteTask_NotFound() {
	c, w := suite.authContext(http.MethodDelete, "/tasks/missing", nil, suite.member)
	withParam(c, "id", "missing")
	suite.tasks.DeleteTask(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestSubtasks_CreateAndToggle() {
	project := suite.createProject("Brand refresh", nil)
	task := suite.createTask(project.ID, "Moodboard")

	c, w := suite.authContext(http.MethodPost, "/tasks/"+task.ID+"/subtasks", map[string]string{"title": "Collect references"}, suite.member)
	withParam(c, "id", task.ID)
	suite.tasks.CreateSubtask(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var subtask models.Subtask
	suite.decode(w, &subtask)
	suite.False(subtask.Completed)

	c, w = suite.authContext(http.MethodPatch, "/tasks/"+task.ID+"/subtasks/"+subtask.ID, nil, suite.member)
	withParam(c, "id", task.ID)
	withParam(c, "subtaskId", subtask.ID)
	suite.tasks.ToggleSubtask(c)

	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &subtask)
	suite.True(subtask.Completed)
}

func (suite *HandlerTestSuite) TestToggleSubtask_WrongTask() {
	project := suite.createProject("Brand refresh", nil)
	task := suite.createTask(project.ID, "Moodboard")
	other := suite.createTask(project.ID, "Typography")
	subtask := &models.Subtask{TaskID: task.ID, Title: "Collect references"}
	suite.Require().NoError(suite.db.Create(subtask).Error)

	c, w := suite.authContext(http.MethodPatch, "/tasks/"+other.ID+"/subtasks/"+subtask.ID, nil, suite.member)
	withParam(c, "id", other.ID)
	withParam(c, "subtaskId", subtask.ID)
	suite.tasks.ToggleSubtask(c)

	suite.Equal(http.StatusNotFound, w.Code)

	var stored models.Subtask
	suite.Require().NoError(suite.db.Where("id = ?", subtask.ID).First(&stored).Error)
	suite.False(stored.Completed)
}

func (suite *HandlerTestSuite) TestDraftTasks_AIUnavailable() {
	project := suite.createProject("Brand refresh", nil)

	c, w := suite.authContext(http.MethodPost, "/projects/"+project.ID+"/tasks/draft", map[string]string{"brief": "A new logo"}, suite.member)
	withParam(c, "id", project.ID)
	suite.tasks.DraftTasks(c)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlerTestSuite) TestListProjects_ClientSeesOwn() {
	suite.createProject("Acme site", &suite.client.UserID)
	suite.createProject("Internal", nil)

	c, w := suite.authContext(http.MethodGet, "/projects", nil, suite.client)
	suite.projects.ListProjects(c)

	suite.Equal(http.StatusOK, w.Code)
	var response struct {
		Projects []dto.ProjectDTO `json:"projects"`
	}
	suite.decode(w, &response)
	suite.Require().Len(response.Projects, 1)
	suite.Equal("Acme site", response.Projects[0].Name)
}

func (suite *HandlerTestSuite) TestCreateProject() {
	c, w := suite.authContext(http.MethodPost, "/projects", map[string]interface{}{
		"name":      "Acme site",
		"client_id": suite.client.UserID,
	}, suite.admin)
	suite.projects.CreateProject(c)

	suite.Equal(http.StatusCreated, w.Code)
	var project dto.ProjectDTO
	suite.decode(w, &project)
	suite.Equal(models.ProjectStatusActive, project.Status)

	c, w = suite.authContext(http.MethodPost, "/projects", map[string]interface{}{"name": "Nope"}, suite.client)
	suite.projects.CreateProject(c)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestUploadAssets_ThenList() {
	project := suite.createProject("Brand refresh", nil)

	c, w := suite.authContext(http.MethodPost, "/assets", map[string]interface{}{
		"project_id": project.ID,
		"files": []map[string]interface{}{
			{"name": "logo.png", "file_url": "https://cdn.test/logo.png", "file_type": "image/png", "file_size": 2048},
			{"name": "brief.pdf", "file_url": "https://cdn.test/brief.pdf", "file_type": "application/pdf", "file_size": 1000},
		},
	}, suite.member)
	suite.assets.UploadAssets(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w = suite.authContext(http.MethodGet, "/assets?project_id="+project.ID, nil, suite.member)
	suite.assets.ListAssets(c)

	suite.Equal(http.StatusOK, w.Code)
	var response struct {
		Assets []dto.AssetDTO `json:"assets"`
	}
	suite.decode(w, &response)
	suite.Require().Len(response.Assets, 2)
	for _, a := range response.Assets {
		suite.Equal("Brand refresh", a.ProjectName)
		suite.NotEmpty(a.SizeLabel)
	}
}

func (suite *HandlerTestSuite) TestUploadAssets_NoFiles() {
	project := suite.createProject("Brand refresh", nil)

	c, w := suite.authContext(http.MethodPost, "/assets", map[string]interface{}{"project_id": project.ID}, suite.member)
	suite.assets.UploadAssets(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestMoveFolder_IntoOwnChild() {
	project := suite.createProject("Brand refresh", nil)
	parent := &models.Folder{ProjectID: project.ID, Name: "Drafts", CreatedBy: suite.member.UserID}
	suite.Require().NoError(suite.db.Create(parent).Error)
	child := &models.Folder{ProjectID: project.ID, Name: "Round 1", ParentID: &parent.ID, CreatedBy: suite.member.UserID}
	suite.Require().NoError(suite.db.Create(child).Error)

	c, w := suite.authContext(http.MethodPatch, "/assets/folders/"+parent.ID, map[string]interface{}{"parent_id": child.ID}, suite.member)
	withParam(c, "id", parent.ID)
	suite.assets.MoveFolder(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestFeedback_CreateAndGroup() {
	project := suite.createProject("Brand refresh", &suite.client.UserID)

	for _, body := range []map[string]interface{}{
		{"project_id": project.ID, "content": "Love the palette"},
		{"content": "Studio-wide note"},
	} {
		c, w := suite.authContext(http.MethodPost, "/feedback", body, suite.client)
		suite.feedback.CreateComment(c)
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	c, w := suite.authContext(http.MethodGet, "/feedback", nil, suite.member)
	suite.feedback.ListFeedback(c)

	suite.Equal(http.StatusOK, w.Code)
	var response struct {
		Groups []dto.FeedbackGroupDTO `json:"groups"`
	}
	suite.decode(w, &response)
	projects := make([]string, 0, len(response.Groups))
	for _, g := range response.Groups {
		projects = append(projects, g.Project)
	}
	suite.ElementsMatch([]string{"Brand refresh", constants.GeneralFeedbackGroup}, projects)
}

func (suite *HandlerTestSuite) TestFeedback_ClientOnForeignProject() {
	project := suite.createProject("Internal pitch", nil)

	c, w := suite.authContext(http.MethodPost, "/feedback", map[string]interface{}{"project_id": project.ID, "content": "Looks great"}, suite.client)
	suite.feedback.CreateComment(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestFeedback_EmptyContent() {
	c, w := suite.authContext(http.MethodPost, "/feedback", map[string]interface{}{"content": "   "}, suite.client)
	suite.feedback.CreateComment(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) createInvoice(sess services.Session) (*httptest.ResponseRecorder, dto.InvoiceDTO) {
	issued := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c, w := suite.authContext(http.MethodPost, "/invoices", map[string]interface{}{
		"client_id":  suite.client.UserID,
		"issue_date": issued,
		"due_date":   issued.AddDate(0, 0, 30),
		"subtotal":   1000,
		"tax":        100,
		"items": []map[string]interface{}{
			{"description": "Logo design", "quantity": 10, "rate": 100},
		},
	}, sess)
	suite.invoices.CreateInvoice(c)

	var invoice dto.InvoiceDTO
	if w.Code == http.StatusCreated {
		suite.decode(w, &invoice)
	}
	return w, invoice
}

func (suite *HandlerTestSuite) TestCreateInvoice_AdminOnly() {
	w, invoice := suite.createInvoice(suite.admin)
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Equal("INV-2026-0001", invoice.InvoiceNumber)
	suite.Equal(models.InvoiceStatusDraft, invoice.Status)
	suite.InDelta(1100, invoice.Total, 0.001)

	w, _ = suite.createInvoice(suite.member)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestInvoiceStatusAndPDF() {
	w, invoice := suite.createInvoice(suite.admin)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w := suite.authContext(http.MethodPatch, "/invoices/"+invoice.ID+"/status", map[string]string{"status": "paid"}, suite.admin)
	withParam(c, "id", invoice.ID)
	suite.invoices.UpdateInvoiceStatus(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	c, w = suite.authContext(http.MethodGet, "/invoices", nil, suite.client)
	suite.invoices.ListInvoices(c)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.InvoiceListDTO
	suite.decode(w, &list)
	suite.Len(list.Invoices, 1)
	suite.InDelta(1100, list.PaidRevenue, 0.001)

	c, w = suite.authContext(http.MethodGet, "/invoices/"+invoice.ID+"/pdf", nil, suite.client)
	withParam(c, "id", invoice.ID)
	suite.invoices.DownloadPDF(c)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "INV-2026-0001.pdf")
	suite.True(bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func (suite *HandlerTestSuite) TestUpdateInvoiceStatus_Invalid() {
	w, invoice := suite.createInvoice(suite.admin)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w := suite.authContext(http.MethodPatch, "/invoices/"+invoice.ID+"/status", map[string]string{"status": "void"}, suite.admin)
	withParam(c, "id", invoice.ID)
	suite.invoices.UpdateInvoiceStatus(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSettings_UpdateNameAndNotifications() {
	c, w := suite.authContext(http.MethodPatch, "/settings", map[string]string{"full_name": "Mina Park"}, suite.member)
	suite.settings.UpdateSettings(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("Mina Park", user.FullName)

	notification := &models.Notification{UserID: suite.member.UserID, Title: "Task assigned", Message: "Moodboard", Type: models.NotificationInfo}
	suite.Require().NoError(suite.db.Create(notification).Error)

	c, w = suite.authContext(http.MethodPost, "/settings/notifications/"+notification.ID+"/read", nil, suite.client)
	withParam(c, "id", notification.ID)
	suite.settings.MarkNotificationRead(c)
	suite.Equal(http.StatusNotFound, w.Code)

	c, w = suite.authContext(http.MethodPost, "/settings/notifications/"+notification.ID+"/read", nil, suite.member)
	withParam(c, "id", notification.ID)
	suite.settings.MarkNotificationRead(c)
	suite.Equal(http.StatusOK, w.Code)

	c, w = suite.authContext(http.MethodGet, "/settings/notifications?unread=true", nil, suite.member)
	suite.settings.ListNotifications(c)
	suite.Equal(http.StatusOK, w.Code)
	var response struct {
		Notifications []models.Notification `json:"notifications"`
	}
	suite.decode(w, &response)
	suite.Empty(response.Notifications)
}

func (suite *HandlerTestSuite) TestGetTeam() {
	suite.Require().NoError(suite.db.Model(&models.User{}).Where("id = ?", suite.member.UserID).Update("xp_points", 250).Error)

	c, w := suite.authContext(http.MethodGet, "/team", nil, suite.member)
	suite.team.GetTeam(c)

	suite.Equal(http.StatusOK, w.Code)
	var team dto.TeamDTO
	suite.decode(w, &team)
	suite.Require().NotEmpty(team.Leaderboard)
	suite.Equal(suite.member.UserID, team.Leaderboard[0].User.ID)
	suite.Equal(2, team.Leaderboard[0].Level)
	suite.Equal(250, team.TotalXP)
}

func (suite *HandlerTestSuite) TestStreamActivity_SendsSnapshot() {
	suite.Require().NoError(suite.db.Create(&models.TeamActivity{UserID: suite.member.UserID, ActivityType: models.ActivityLogin}).Error)

	r := gin.New()
	r.GET("/team/activity/stream", suite.team.StreamActivity)
	server := httptest.NewServer(r)
	defer server.Close()

	ctx, cancel := context.WithTimeout(suite.ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/team/activity/stream", nil)
	suite.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)

	scanner := bufio.NewScanner(resp.Body)
	var event, data string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") {
			event = strings.TrimPrefix(line, "event:")
		}
		if strings.HasPrefix(line, "data:") {
			data = strings.TrimPrefix(line, "data:")
			break
		}
	}
	cancel()

	suite.Equal("activity", event)
	suite.Contains(data, `"activity_type":"login"`)
}

func (suite *HandlerTestSuite) TestGetDashboard() {
	suite.createProject("Brand refresh", nil)

	c, w := suite.authContext(http.MethodGet, "/dashboard", nil, suite.member)
	suite.dashboard.GetDashboard(c)

	suite.Equal(http.StatusOK, w.Code)
	var summary dto.DashboardDTO
	suite.decode(w, &summary)
	suite.Equal(int64(1), summary.ActiveProjects)
	suite.Len(summary.RecentProjects, 1)
}

func (suite *HandlerTestSuite) TestGetDashboard_ClientForbidden() {
	suite.createProject("Brand refresh", nil)

	c, w := suite.authContext(http.MethodGet, "/dashboard", nil, suite.client)
	suite.dashboard.GetDashboard(c)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.NotContains(w.Body.String(), "Brand refresh")
}

func (suite *HandlerTestSuite) TestHandlers_RequireSession() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/tasks", nil)

	suite.tasks.ListTasks(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
