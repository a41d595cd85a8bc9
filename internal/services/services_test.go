package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/studio-ops-api/internal/constants"
	"github.com/yukikurage/studio-ops-api/internal/database"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/realtime"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (p *recordingPublisher) Publish(topic string, ev realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if topic == constants.TopicTeamActivity {
		p.events = append(p.events, ev)
	}
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) SendNotification(to string, n NotificationMail) error {
	m.sent = append(m.sent, to+": "+n.Title)
	return nil
}

// failingAssetRepository lets the first okCreates inserts through
type failingAssetRepository struct {
	repository.AssetRepository
	okCreates int
	creates   int
}

func (r *failingAssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	r.creates++
	if r.creates > r.okCreates {
		return errors.New("storage unavailable")
	}
	return r.AssetRepository.Create(ctx, asset)
}

type ServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	ctx       context.Context
	publisher *recordingPublisher
	mailer    *recordingMailer

	userRepo     repository.UserRepository
	projectRepo  repository.ProjectRepository
	taskRepo     repository.TaskRepository
	assetRepo    repository.AssetRepository
	folderRepo   repository.FolderRepository
	commentRepo  repository.CommentRepository
	invoiceRepo  repository.InvoiceRepository
	activityRepo repository.ActivityRepository
	badgeRepo    repository.BadgeRepository

	activity      *ActivityService
	notifications *NotificationService
}

func (suite *ServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = database.OpenSQLite(filepath.Join(suite.T().TempDir(), "studio.db"))
	suite.Require().NoError(err)
	suite.Require().NoError(database.AutoMigrate(suite.db))
	suite.ctx = context.Background()

	suite.userRepo = repository.NewUserRepository(suite.db)
	suite.projectRepo = repository.NewProjectRepository(suite.db)
	suite.taskRepo = repository.NewTaskRepository(suite.db)
	suite.assetRepo = repository.NewAssetRepository(suite.db)
	suite.folderRepo = repository.NewFolderRepository(suite.db)
	suite.commentRepo = repository.NewCommentRepository(suite.db)
	suite.invoiceRepo = repository.NewInvoiceRepository(suite.db)
	suite.activityRepo = repository.NewActivityRepository(suite.db)
	suite.badgeRepo = repository.NewBadgeRepository(suite.db)

	suite.publisher = &recordingPublisher{}
	suite.mailer = &recordingMailer{}
	suite.activity = NewActivityService(suite.activityRepo, suite.publisher)
	suite.notifications = NewNotificationService(repository.NewNotificationRepository(suite.db), suite.userRepo, suite.mailer)
}

func (suite *ServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ServiceTestSuite) session(email string, role models.UserRole) Session {
	user := &models.User{Email: email, FullName: email, Role: role}
	suite.Require().NoError(suite.userRepo.Create(suite.ctx, user))
	return Session{UserID: user.ID, Role: role}
}

func (suite *ServiceTestSuite) project(name string, owner Session, clientID *string) *models.Project {
	project := &models.Project{Name: name, Status: models.ProjectStatusActive, CreatedBy: owner.UserID, ClientID: clientID}
	suite.Require().NoError(suite.projectRepo.Create(suite.ctx, project))
	return project
}

func (suite *ServiceTestSuite) activityTypes() []models.ActivityType {
	rows, err := suite.activityRepo.ListRecent(suite.ctx, 100)
	suite.Require().NoError(err)
	types := make([]models.ActivityType, len(rows))
	for i, r := range rows {
		types[i] = r.ActivityType
	}
	return types
}

func (suite *ServiceTestSuite) TestUploadAssets_KeepsEarlierFilesOnFailure() {
	staff := suite.session("designer@studio.test", models.UserRoleTeamMember)
	project := suite.project("Brand refresh", staff, nil)

	flaky := &failingAssetRepository{AssetRepository: suite.assetRepo, okCreates: 1}
	svc := NewAssetService(flaky, suite.projectRepo, suite.folderRepo, suite.activity)

	created, err := svc.UploadAssets(suite.ctx, staff, UploadAssetsInput{
		ProjectID: project.ID,
		Files: []FileUpload{
			{Name: "logo.svg", FileURL: "https://cdn.test/logo.svg", FileType: "image/svg+xml", FileSize: 2048},
			{Name: "cover.png", FileURL: "https://cdn.test/cover.png", FileType: "image/png", FileSize: 4096},
		},
	})
	suite.Error(err)
	suite.Require().Len(created, 1)
	suite.Equal("logo.svg", created[0].Name)

	views, err := svc.ListAssets(suite.ctx, &project.ID, nil)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal("Brand refresh", views[0].ProjectName)
	suite.Equal("2.0 kB", views[0].SizeLabel)
	suite.Equal([]models.ActivityType{models.ActivityUpload}, suite.activityTypes())
}

func (suite *ServiceTestSuite) TestUploadAssets_ClientForbidden() {
	staff := suite.session("designer@studio.test", models.UserRoleTeamMember)
	client := suite.session("client@brand.test", models.UserRoleClient)
	project := suite.project("Brand refresh", staff, &client.UserID)

	svc := NewAssetService(suite.assetRepo, suite.projectRepo, suite.folderRepo, suite.activity)
	_, err := svc.UploadAssets(suite.ctx, client, UploadAssetsInput{
		ProjectID: project.ID,
		Files:     []FileUpload{{Name: "brief.pdf", FileURL: "https://cdn.test/brief.pdf"}},
	})
	suite.ErrorIs(err, ErrForbidden)
}

func (suite *ServiceTestSuite) TestUploadAssetVersion_BumpsVersionAndRevisions() {
	staff := suite.session("designer@studio.test", models.UserRoleTeamMember)
	project := suite.project("Packaging", staff, nil)
	svc := NewAssetService(suite.assetRepo, suite.projectRepo, suite.folderRepo, suite.activity)

	created, err := svc.UploadAssets(suite.ctx, staff, UploadAssetsInput{
		ProjectID: project.ID,
		Files:     []FileUpload{{Name: "box.ai", FileURL: "https://cdn.test/box-1.ai", FileSize: 10}},
	})
	suite.Require().NoError(err)

	note := "new dieline"
	asset, err := svc.UploadAssetVersion(suite.ctx, staff, created[0].ID, UploadVersionInput{
		File:               FileUpload{Name: "box.ai", FileURL: "https://cdn.test/box-2.ai", FileSize: 12},
		ChangesDescription: &note,
	})
	suite.Require().NoError(err)
	suite.Equal(2, asset.Version)
	suite.Equal("https://cdn.test/box-2.ai", asset.FileURL)

	versions, err := svc.ListVersions(suite.ctx, asset.ID)
	suite.Require().NoError(err)
	suite.Len(versions, 2)

	reloaded, err := suite.projectRepo.FindByID(suite.ctx, project.ID)
	suite.Require().NoError(err)
	suite.Equal(1, reloaded.RevisionCount)

	_, err = svc.UploadAssetVersion(suite.ctx, staff, "missing", UploadVersionInput{File: FileUpload{Name: "x", FileURL: "https://cdn.test/x"}})
	suite.ErrorIs(err, ErrAssetNotFound)
}

func (suite *ServiceTestSuite) TestMoveFolder_RejectsDescendant() {
	staff := suite.session("pm@studio.test", models.UserRoleAdmin)
	project := suite.project("Website", staff, nil)
	svc := NewFolderService(suite.folderRepo, suite.projectRepo)

	root, err := svc.CreateFolder(suite.ctx, staff, CreateFolderInput{ProjectID: project.ID, Name: "Design"})
	suite.Require().NoError(err)
	child, err := svc.CreateFolder(suite.ctx, staff, CreateFolderInput{ProjectID: project.ID, Name: "Mockups", ParentID: &root.ID})
	suite.Require().NoError(err)
	grandchild, err := svc.CreateFolder(suite.ctx, staff, CreateFolderInput{ProjectID: project.ID, Name: "Mobile", ParentID: &child.ID})
	suite.Require().NoError(err)

	_, err = svc.MoveFolder(suite.ctx, staff, root.ID, &grandchild.ID)
	suite.ErrorIs(err, models.ErrFolderCycle)
	_, err = svc.MoveFolder(suite.ctx, staff, root.ID, &root.ID)
	suite.ErrorIs(err, models.ErrFolderCycle)

	moved, err := svc.MoveFolder(suite.ctx, staff, grandchild.ID, nil)
	suite.Require().NoError(err)
	suite.Nil(moved.ParentID)

	roots, err := svc.ListFolders(suite.ctx, &project.ID, nil)
	suite.Require().NoError(err)
	suite.Require().Len(roots, 2)
	suite.Equal("Design", roots[0].Name)
	suite.Equal("Mobile", roots[1].Name)
}

func (suite *ServiceTestSuite) TestCreateFolder_ParentFromOtherProject() {
	staff := suite.session("pm@studio.test", models.UserRoleAdmin)
	first := suite.project("First", staff, nil)
	second := suite.project("Second", staff, nil)
	svc := NewFolderService(suite.folderRepo, suite.projectRepo)

	parent, err := svc.CreateFolder(suite.ctx, staff, CreateFolderInput{ProjectID: first.ID, Name: "Shared"})
	suite.Require().NoError(err)

	_, err = svc.CreateFolder(suite.ctx, staff, CreateFolderInput{ProjectID: second.ID, Name: "Nested", ParentID: &parent.ID})
	suite.ErrorIs(err, ErrFolderWrongParent)
}

func (suite *ServiceTestSuite) TestListFeedback_GeneralBucket() {
	staff := suite.session("pm@studio.test", models.UserRoleAdmin)
	client := suite.session("client@brand.test", models.UserRoleClient)
	project := suite.project("Campaign", staff, &client.UserID)
	svc := NewFeedbackService(suite.commentRepo, suite.assetRepo, suite.taskRepo, suite.projectRepo, suite.activity)

	_, err := svc.CreateComment(suite.ctx, client, CreateCommentInput{Content: "Loving the direction"})
	suite.Require().NoError(err)
	_, err = svc.CreateComment(suite.ctx, client, CreateCommentInput{ProjectID: &project.ID, Content: "Can we try blue?"})
	suite.Require().NoError(err)

	_, err = svc.CreateComment(suite.ctx, client, CreateCommentInput{Content: "   "})
	suite.ErrorIs(err, ErrCommentContentRequired)

	groups, err := svc.ListFeedback(suite.ctx, nil)
	suite.Require().NoError(err)
	suite.Require().Len(groups, 2)

	keys := map[string]int{}
	for _, g := range groups {
		keys[g.Key] = len(g.Items)
	}
	suite.Equal(map[string]int{"Campaign": 1, constants.GeneralFeedbackGroup: 1}, keys)
	suite.Equal(2, suite.publisher.count())
}

func (suite *ServiceTestSuite) TestCreateComment_AssetInheritsProject() {
	staff := suite.session("designer@studio.test", models.UserRoleTeamMember)
	project := suite.project("Packaging", staff, nil)
	asset := &models.Asset{ProjectID: project.ID, Name: "box.ai", FileURL: "https://cdn.test/box.ai", UploadedBy: staff.UserID}
	suite.Require().NoError(suite.assetRepo.Create(suite.ctx, asset))

	x, y := 0.25, 0.75
	svc := NewFeedbackService(suite.commentRepo, suite.assetRepo, suite.taskRepo, suite.projectRepo, suite.activity)
	comment, err := svc.CreateComment(suite.ctx, staff, CreateCommentInput{AssetID: &asset.ID, Content: "Move the logo", PinX: &x, PinY: &y})
	suite.Require().NoError(err)
	suite.Require().NotNil(comment.ProjectID)
	suite.Equal(project.ID, *comment.ProjectID)
	suite.True(comment.Pinned())
}

func (suite *ServiceTestSuite) TestCreateComment_ClientLimitedToOwnProjects() {
	staff := suite.session("pm@studio.test", models.UserRoleAdmin)
	clientA := suite.session("a@brand.test", models.UserRoleClient)
	clientB := suite.session("b@other.test", models.UserRoleClient)
	project := suite.project("Rebrand", staff, &clientA.UserID)
	asset := &models.Asset{ProjectID: project.ID, Name: "logo.png", FileURL: "https://cdn.test/logo.png", UploadedBy: staff.UserID}
	suite.Require().NoError(suite.assetRepo.Create(suite.ctx, asset))
	svc := NewFeedbackService(suite.commentRepo, suite.assetRepo, suite.taskRepo, suite.projectRepo, suite.activity)

	_, err := svc.CreateComment(suite.ctx, clientB, CreateCommentInput{ProjectID: &project.ID, Content: "Make it pop"})
	suite.ErrorIs(err, ErrProjectNotFound)

	_, err = svc.CreateComment(suite.ctx, clientB, CreateCommentInput{AssetID: &asset.ID, Content: "Make it pop"})
	suite.ErrorIs(err, ErrProjectNotFound)

	_, err = svc.CreateComment(suite.ctx, clientA, CreateCommentInput{ProjectID: &project.ID, Content: "Make it pop"})
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestCreateComment_TargetsShareProject() {
	staff := suite.session("designer@studio.test", models.UserRoleTeamMember)
	first := suite.project("Packaging", staff, nil)
	second := suite.project("Signage", staff, nil)
	asset := &models.Asset{ProjectID: first.ID, Name: "box.ai", FileURL: "https://cdn.test/box.ai", UploadedBy: staff.UserID}
	suite.Require().NoError(suite.assetRepo.Create(suite.ctx, asset))
	task := &models.Task{ProjectID: second.ID, Title: "Print run", Status: models.TaskStatusTodo, Priority: models.TaskPriorityMedium, CreatedBy: staff.UserID}
	suite.Require().NoError(suite.taskRepo.Create(suite.ctx, task))
	svc := NewFeedbackService(suite.commentRepo, suite.assetRepo, suite.taskRepo, suite.projectRepo, suite.activity)

	_, err := svc.CreateComment(suite.ctx, staff, CreateCommentInput{ProjectID: &second.ID, AssetID: &asset.ID, Content: "Wrong board"})
	suite.ErrorIs(err, ErrCommentTargetMismatch)

	_, err = svc.CreateComment(suite.ctx, staff, CreateCommentInput{AssetID: &asset.ID, TaskID: &task.ID, Content: "Wrong board"})
	suite.ErrorIs(err, ErrCommentTargetMismatch)

	parent, err := svc.CreateComment(suite.ctx, staff, CreateCommentInput{AssetID: &asset.ID, Content: "Tighten the margins"})
	suite.Require().NoError(err)

	_, err = svc.CreateComment(suite.ctx, staff, CreateCommentInput{TaskID: &task.ID, ParentID: &parent.ID, Content: "Done"})
	suite.ErrorIs(err, ErrCommentTargetMismatch)

	missing := "00000000-0000-0000-0000-000000000000"
	_, err = svc.CreateComment(suite.ctx, staff, CreateCommentInput{ParentID: &missing, Content: "Done"})
	suite.ErrorIs(err, ErrCommentNotFound)

	reply, err := svc.CreateComment(suite.ctx, staff, CreateCommentInput{ParentID: &parent.ID, Content: "Done"})
	suite.Require().NoError(err)
	suite.Require().NotNil(reply.ProjectID)
	suite.Equal(first.ID, *reply.ProjectID)

	onTask, err := svc.CreateComment(suite.ctx, staff, CreateCommentInput{TaskID: &task.ID, Content: "Booked the printer"})
	suite.Require().NoError(err)
	suite.Require().NotNil(onTask.ProjectID)
	suite.Equal(second.ID, *onTask.ProjectID)
}

func (suite *ServiceTestSuite) TestCreateInvoice_NumbersAndTotal() {
	admin := suite.session("owner@studio.test", models.UserRoleAdmin)
	client := suite.session("client@brand.test", models.UserRoleClient)
	svc := NewInvoiceService(suite.invoiceRepo, suite.userRepo, suite.projectRepo, NewSequenceNumberGenerator(suite.invoiceRepo))

	issued := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	input := CreateInvoiceInput{
		ClientID:  client.UserID,
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, 30),
		Subtotal:  1200,
		Tax:       0,
		Items:     []InvoiceItemInput{{Description: "Logo design", Quantity: 2, Rate: 600}},
	}

	first, err := svc.CreateInvoice(suite.ctx, admin, input)
	suite.Require().NoError(err)
	second, err := svc.CreateInvoice(suite.ctx, admin, input)
	suite.Require().NoError(err)

	suite.Equal("INV-2026-0001", first.InvoiceNumber)
	suite.Equal("INV-2026-0002", second.InvoiceNumber)
	suite.Equal(models.InvoiceStatusDraft, first.Status)
	suite.Equal(1200.0, first.Total)
	suite.Require().Len(first.Items, 1)
	suite.Equal(1200.0, first.Items[0].Amount)
}

func (suite *ServiceTestSuite) TestCreateInvoice_Guards() {
	staff := suite.session("designer@studio.test", models.UserRoleTeamMember)
	admin := suite.session("owner@studio.test", models.UserRoleAdmin)
	client := suite.session("client@brand.test", models.UserRoleClient)
	svc := NewInvoiceService(suite.invoiceRepo, suite.userRepo, suite.projectRepo, NewSequenceNumberGenerator(suite.invoiceRepo))

	now := time.Now()
	_, err := svc.CreateInvoice(suite.ctx, staff, CreateInvoiceInput{ClientID: client.UserID, IssueDate: now, DueDate: now})
	suite.ErrorIs(err, ErrForbidden)

	_, err = svc.CreateInvoice(suite.ctx, admin, CreateInvoiceInput{ClientID: staff.UserID, IssueDate: now, DueDate: now})
	suite.ErrorIs(err, ErrNotAClient)

	_, err = svc.CreateInvoice(suite.ctx, admin, CreateInvoiceInput{ClientID: client.UserID, IssueDate: now, DueDate: now, Subtotal: -1})
	suite.ErrorIs(err, ErrNegativeAmount)

	_, err = svc.CreateInvoice(suite.ctx, admin, CreateInvoiceInput{ClientID: client.UserID, IssueDate: now, DueDate: now.Add(-time.Hour)})
	suite.ErrorIs(err, ErrDueBeforeIssue)
}

func (suite *ServiceTestSuite) TestListInvoices_ClientScopeAndRevenue() {
	admin := suite.session("owner@studio.test", models.UserRoleAdmin)
	alice := suite.session("alice@brand.test", models.UserRoleClient)
	bob := suite.session("bob@shop.test", models.UserRoleClient)
	svc := NewInvoiceService(suite.invoiceRepo, suite.userRepo, suite.projectRepo, NewSequenceNumberGenerator(suite.invoiceRepo))

	now := time.Now()
	issue := func(client Session, subtotal, tax float64, status models.InvoiceStatus) *models.Invoice {
		inv, err := svc.CreateInvoice(suite.ctx, admin, CreateInvoiceInput{ClientID: client.UserID, IssueDate: now, DueDate: now, Subtotal: subtotal, Tax: tax})
		suite.Require().NoError(err)
		if status != models.InvoiceStatusDraft {
			inv, err = svc.UpdateInvoiceStatus(suite.ctx, admin, inv.ID, status)
			suite.Require().NoError(err)
		}
		return inv
	}
	issue(alice, 100, 10, models.InvoiceStatusPaid)
	issue(alice, 200, 0, models.InvoiceStatusSent)
	bobs := issue(bob, 500, 50, models.InvoiceStatusOverdue)
	issue(bob, 80, 0, models.InvoiceStatusDraft)

	all, err := svc.ListInvoices(suite.ctx, admin, nil)
	suite.Require().NoError(err)
	suite.Len(all.Invoices, 4)
	suite.Equal(110.0, all.PaidRevenue)
	suite.Equal(750.0, all.Pending)

	mine, err := svc.ListInvoices(suite.ctx, alice, nil)
	suite.Require().NoError(err)
	suite.Len(mine.Invoices, 2)
	suite.Equal(110.0, mine.PaidRevenue)
	suite.Equal(200.0, mine.Pending)

	_, err = svc.GetInvoice(suite.ctx, alice, bobs.ID)
	suite.ErrorIs(err, ErrInvoiceNotFound)

	data, err := svc.PDFData(suite.ctx, bob, bobs.ID)
	suite.Require().NoError(err)
	suite.Equal("bob@shop.test", data.ClientEmail)
	suite.Equal(550.0, data.Total)
	suite.Equal("overdue", data.Status)
}

func (suite *ServiceTestSuite) TestUpdateInvoiceStatus_AnyTransition() {
	admin := suite.session("owner@studio.test", models.UserRoleAdmin)
	client := suite.session("client@brand.test", models.UserRoleClient)
	svc := NewInvoiceService(suite.invoiceRepo, suite.userRepo, suite.projectRepo, NewSequenceNumberGenerator(suite.invoiceRepo))

	now := time.Now()
	inv, err := svc.CreateInvoice(suite.ctx, admin, CreateInvoiceInput{ClientID: client.UserID, IssueDate: now, DueDate: now})
	suite.Require().NoError(err)

	for _, status := range []models.InvoiceStatus{models.InvoiceStatusPaid, models.InvoiceStatusDraft, models.InvoiceStatusOverdue} {
		updated, err := svc.UpdateInvoiceStatus(suite.ctx, admin, inv.ID, status)
		suite.Require().NoError(err)
		suite.Equal(status, updated.Status)
	}

	_, err = svc.UpdateInvoiceStatus(suite.ctx, admin, inv.ID, models.InvoiceStatus("void"))
	suite.ErrorIs(err, ErrInvalidInvoiceStatus)
	_, err = svc.UpdateInvoiceStatus(suite.ctx, client, inv.ID, models.InvoiceStatusPaid)
	suite.ErrorIs(err, ErrForbidden)
}

func (suite *ServiceTestSuite) TestDashboardSummary() {
	admin := suite.session("owner@studio.test", models.UserRoleAdmin)
	client := suite.session("client@brand.test", models.UserRoleClient)
	active := suite.project("Active", admin, nil)
	archived := &models.Project{Name: "Old", Status: models.ProjectStatusArchived, CreatedBy: admin.UserID}
	suite.Require().NoError(suite.projectRepo.Create(suite.ctx, archived))

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	soon := now.Add(3 * 24 * time.Hour)
	overdue := now.Add(-24 * time.Hour)
	far := now.Add(30 * 24 * time.Hour)
	tasks := []*models.Task{
		{ProjectID: active.ID, Title: "soon", Status: models.TaskStatusTodo, Deadline: &soon, CreatedBy: admin.UserID},
		{ProjectID: active.ID, Title: "overdue", Status: models.TaskStatusInProgress, Deadline: &overdue, CreatedBy: admin.UserID},
		{ProjectID: active.ID, Title: "shipped", Status: models.TaskStatusDone, Deadline: &soon, CreatedBy: admin.UserID},
		{ProjectID: active.ID, Title: "far", Status: models.TaskStatusTodo, Deadline: &far, CreatedBy: admin.UserID},
		{ProjectID: active.ID, Title: "someday", Status: models.TaskStatusTodo, CreatedBy: admin.UserID},
	}
	for _, task := range tasks {
		suite.Require().NoError(suite.taskRepo.Create(suite.ctx, task))
	}

	invoices := NewInvoiceService(suite.invoiceRepo, suite.userRepo, suite.projectRepo, NewSequenceNumberGenerator(suite.invoiceRepo))
	inv, err := invoices.CreateInvoice(suite.ctx, admin, CreateInvoiceInput{ClientID: client.UserID, IssueDate: now, DueDate: now, Subtotal: 900, Tax: 100})
	suite.Require().NoError(err)
	_, err = invoices.UpdateInvoiceStatus(suite.ctx, admin, inv.ID, models.InvoiceStatusPaid)
	suite.Require().NoError(err)

	svc := NewDashboardService(suite.projectRepo, suite.taskRepo, suite.invoiceRepo)
	svc.now = func() time.Time { return now }

	_, err = svc.Summary(suite.ctx, client)
	suite.ErrorIs(err, ErrForbidden)

	summary, err := svc.Summary(suite.ctx, admin)
	suite.Require().NoError(err)
	suite.Equal(int64(1), summary.ActiveProjects)
	suite.Equal(int64(5), summary.TotalTasks)
	suite.Equal(int64(2), summary.UpcomingDeadline)
	suite.Equal(1000.0, summary.PaidRevenue)
	suite.Len(summary.RecentProjects, 2)
	suite.Require().Len(summary.UpcomingTasks, 4)
	suite.Equal("overdue", summary.UpcomingTasks[0].Title)
	suite.Equal("Active", summary.UpcomingTasks[0].Project.Name)
}

func (suite *ServiceTestSuite) TestUpdateTask_StatusChangeRecordsActivityAndNotifies() {
	lead := suite.session("lead@studio.test", models.UserRoleAdmin)
	designer := suite.session("designer@studio.test", models.UserRoleTeamMember)
	project := suite.project("Launch", lead, nil)
	svc := NewTaskService(suite.taskRepo, suite.projectRepo, suite.userRepo, suite.activity, suite.notifications, nil)

	task, err := svc.CreateTask(suite.ctx, lead, CreateTaskInput{ProjectID: project.ID, Title: "Hero banner"})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusTodo, task.Status)

	done := models.TaskStatusDone
	updated, err := svc.UpdateTask(suite.ctx, lead, task.ID, UpdateTaskInput{Status: &done, AssignedTo: &designer.UserID})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusDone, updated.Status)

	todo := models.TaskStatusTodo
	_, err = svc.UpdateTask(suite.ctx, lead, task.ID, UpdateTaskInput{Status: &todo})
	suite.Require().NoError(err)

	suite.Equal([]models.ActivityType{models.ActivityTaskUpdate, models.ActivityTaskUpdate}, suite.activityTypes())
	suite.Equal([]string{"designer@studio.test: New task assigned"}, suite.mailer.sent)

	inbox, err := suite.notifications.List(suite.ctx, designer, true)
	suite.Require().NoError(err)
	suite.Require().Len(inbox, 1)
	suite.Require().NoError(suite.notifications.MarkRead(suite.ctx, designer, inbox[0].ID))
	suite.ErrorIs(suite.notifications.MarkRead(suite.ctx, lead, inbox[0].ID), ErrNotificationNotFound)
}

func (suite *ServiceTestSuite) TestTaskWrites_ClientForbidden() {
	lead := suite.session("lead@studio.test", models.UserRoleAdmin)
	client := suite.session("client@brand.test", models.UserRoleClient)
	project := suite.project("Launch", lead, &client.UserID)
	svc := NewTaskService(suite.taskRepo, suite.projectRepo, suite.userRepo, suite.activity, nil, nil)

	_, err := svc.CreateTask(suite.ctx, client, CreateTaskInput{ProjectID: project.ID, Title: "Sneaky"})
	suite.ErrorIs(err, ErrForbidden)

	_, err = svc.DraftTasks(suite.ctx, lead, project.ID, "A landing page")
	suite.ErrorIs(err, ErrAIServiceNotConfigured)
}

func (suite *ServiceTestSuite) TestProjects_ClientSeesOwnOnly() {
	lead := suite.session("lead@studio.test", models.UserRoleAdmin)
	client := suite.session("client@brand.test", models.UserRoleClient)
	svc := NewProjectService(suite.projectRepo, suite.taskRepo, suite.userRepo)

	mine, err := svc.CreateProject(suite.ctx, lead, CreateProjectInput{Name: "Client work", ClientID: &client.UserID})
	suite.Require().NoError(err)
	internal, err := svc.CreateProject(suite.ctx, lead, CreateProjectInput{Name: "Internal"})
	suite.Require().NoError(err)

	_, err = svc.CreateProject(suite.ctx, lead, CreateProjectInput{Name: "Bad", ClientID: &lead.UserID})
	suite.ErrorIs(err, ErrNotAClient)

	visible, err := svc.ListProjects(suite.ctx, client, nil)
	suite.Require().NoError(err)
	suite.Require().Len(visible, 1)
	suite.Equal(mine.ID, visible[0].ID)

	_, err = svc.GetProject(suite.ctx, client, internal.ID)
	suite.ErrorIs(err, ErrProjectNotFound)

	board, err := svc.Board(suite.ctx, client, mine.ID)
	suite.Require().NoError(err)
	suite.Len(board.Columns, len(models.AllTaskStatuses))

	members, err := svc.ListMembers(suite.ctx, lead, mine.ID)
	suite.Require().NoError(err)
	suite.Require().Len(members, 1)
	suite.Equal(lead.UserID, members[0].UserID)
}

func (suite *ServiceTestSuite) TestAwardEligibleBadges() {
	member := &models.User{Email: "star@studio.test", FullName: "Star", Role: models.UserRoleTeamMember, XPPoints: 250}
	suite.Require().NoError(suite.userRepo.Create(suite.ctx, member))
	for _, b := range []*models.Badge{
		{Name: "Rookie", XPRequired: 0},
		{Name: "Pro", XPRequired: 200},
		{Name: "Legend", XPRequired: 1000},
	} {
		suite.Require().NoError(suite.db.Create(b).Error)
	}

	svc := NewTeamService(suite.userRepo, suite.badgeRepo, suite.activity)
	awarded, err := svc.AwardEligibleBadges(suite.ctx, member.ID)
	suite.Require().NoError(err)
	suite.Require().Len(awarded, 2)
	suite.Equal("Rookie", awarded[0].Name)
	suite.Equal("Pro", awarded[1].Name)

	again, err := svc.AwardEligibleBadges(suite.ctx, member.ID)
	suite.Require().NoError(err)
	suite.Empty(again)

	_, err = svc.AwardEligibleBadges(suite.ctx, "missing")
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestProvision_FirstSightThenStoredRole() {
	svc := NewUserService(suite.userRepo, suite.badgeRepo)
	id := Identity{UserID: "2f1c8f9e-7a61-4c57-9d7f-0d1e2b3c4d5e", Email: "new.hire@studio.test", Role: models.UserRole("superuser")}

	user, err := svc.Provision(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Equal(models.UserRoleTeamMember, user.Role)
	suite.Equal("new.hire", user.FullName)

	id.Role = models.UserRoleAdmin
	again, err := svc.Provision(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Equal(models.UserRoleTeamMember, again.Role)

	_, err = svc.UpdateProfile(suite.ctx, Session{UserID: user.ID, Role: user.Role}, "  ")
	suite.ErrorIs(err, ErrFullNameRequired)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
