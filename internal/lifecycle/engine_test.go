package lifecycle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Adhisheshu1210/sb-works-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Freelancer{},
		&models.Project{},
		&models.Application{},
		&models.Chat{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func seedClient(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{
		Username: name,
		Email:    name + "@client.test",
		Password: "hash",
		Usertype: models.UsertypeClient,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedFreelancer(t *testing.T, db *gorm.DB, name string) (*models.User, *models.Freelancer) {
	t.Helper()
	u := &models.User{
		Username: name,
		Email:    name + "@freelancer.test",
		Password: "hash",
		Usertype: models.UsertypeFreelancer,
	}
	require.NoError(t, db.Create(u).Error)

	f := &models.Freelancer{
		UserID:            u.ID,
		Skills:            datatypes.JSONSlice[string]{"go", "sql"},
		CurrentProjects:   datatypes.JSONSlice[string]{},
		CompletedProjects: datatypes.JSONSlice[string]{},
		Applications:      datatypes.JSONSlice[string]{},
	}
	require.NoError(t, db.Create(f).Error)
	return u, f
}

func seedProject(t *testing.T, db *gorm.DB, client *models.User, budget int) *models.Project {
	t.Helper()
	p := &models.Project{
		ClientID:    client.ID,
		ClientName:  client.Username,
		ClientEmail: client.Email,
		Title:       "Landing page",
		Description: "Build a landing page",
		Budget:      budget,
		Skills:      datatypes.JSONSlice[string]{"go"},
		Bids:        datatypes.JSONSlice[string]{},
		BidAmounts:  datatypes.JSONSlice[int]{},
		Status:      models.ProjectAvailable,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func placeBid(t *testing.T, e *Engine, p *models.Project, fu *models.User, client *models.User, amount int) *models.Application {
	t.Helper()
	app, err := e.PlaceBid(BidInput{
		ProjectID:     p.ID,
		FreelancerID:  fu.ID,
		ClientID:      client.ID,
		Proposal:      "I can do this",
		BidAmount:     amount,
		EstimatedTime: 5,
	})
	require.NoError(t, err)
	return app
}

func TestPlaceBid(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	client := seedClient(t, db, "acme")
	fu, _ := seedFreelancer(t, db, "alice")
	project := seedProject(t, db, client, 500)

	app := placeBid(t, e, project, fu, client, 400)

	require.Equal(t, models.ApplicationPending, app.Status)
	require.Equal(t, project.ID, app.ProjectID)
	require.Equal(t, fu.ID, app.FreelancerID)
	require.Equal(t, "alice", app.FreelancerName)
	require.Equal(t, "acme", app.ClientName)
	require.Equal(t, 500, app.Budget)
	require.Equal(t, 400, app.BidAmount)
	require.ElementsMatch(t, []string{"go", "sql"}, app.FreelancerSkills)

	var got models.Project
	require.NoError(t, db.First(&got, "id = ?", project.ID).Error)
	require.Equal(t, datatypes.JSONSlice[string]{fu.ID.String()}, got.Bids)
	require.Equal(t, datatypes.JSONSlice[int]{400}, got.BidAmounts)

	var profile models.Freelancer
	require.NoError(t, db.First(&profile, "user_id = ?", fu.ID).Error)
	require.Equal(t, datatypes.JSONSlice[string]{app.ID.String()}, profile.Applications)
}

func TestPlaceBid_SameFreelancerTwice(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	client := seedClient(t, db, "acme")
	fu, _ := seedFreelancer(t, db, "alice")
	project := seedProject(t, db, client, 500)

	placeBid(t, e, project, fu, client, 400)
	placeBid(t, e, project, fu, client, 350)

	var got models.Project
	require.NoError(t, db.First(&got, "id = ?", project.ID).Error)
	require.Len(t, got.Bids, 2)
	require.Equal(t, datatypes.JSONSlice[int]{400, 350}, got.BidAmounts)
}

func TestPlaceBid_MissingRecords(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	client := seedClient(t, db, "acme")
	fu, _ := seedFreelancer(t, db, "alice")
	project := seedProject(t, db, client, 500)

	_, err := e.PlaceBid(BidInput{ProjectID: uuid.New(), FreelancerID: fu.ID, ClientID: client.ID})
	require.ErrorIs(t, err, ErrProjectNotFound)

	_, err = e.PlaceBid(BidInput{ProjectID: project.ID, FreelancerID: uuid.New(), ClientID: client.ID})
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = e.PlaceBid(BidInput{ProjectID: project.ID, FreelancerID: fu.ID, ClientID: uuid.New()})
	require.ErrorIs(t, err, ErrUserNotFound)

	// a freelancer-role user without a profile row
	orphan := seedClient(t, db, "orphan")
	_, err = e.PlaceBid(BidInput{ProjectID: project.ID, FreelancerID: orphan.ID, ClientID: client.ID})
	require.ErrorIs(t, err, ErrFreelancerNotFound)
}

func TestApproveApplication_WinnerTakesProject(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	client := seedClient(t, db, "acme")
	aliceUser, _ := seedFreelancer(t, db, "alice")
	bobUser, _ := seedFreelancer(t, db, "bob")
	project := seedProject(t, db, client, 500)

	aliceApp := placeBid(t, e, project, aliceUser, client, 400)
	bobApp := placeBid(t, e, project, bobUser, client, 450)

	require.NoError(t, e.ApproveApplication(aliceApp.ID))

	var gotAlice, gotBob models.Application
	require.NoError(t, db.First(&gotAlice, "id = ?", aliceApp.ID).Error)
	require.NoError(t, db.First(&gotBob, "id = ?", bobApp.ID).Error)
	require.Equal(t, models.ApplicationAccepted, gotAlice.Status)
	require.Equal(t, models.ApplicationRejected, gotBob.Status)

	var gotProject models.Project
	require.NoError(t, db.First(&gotProject, "id = ?", project.ID).Error)
	require.Equal(t, models.ProjectAssigned, gotProject.Status)
	require.Equal(t, aliceUser.ID, gotProject.FreelancerID)
	require.Equal(t, "alice", gotProject.FreelancerName)
	require.Equal(t, 400, gotProject.Budget, "accepted bid replaces the original budget")

	var profile models.Freelancer
	require.NoError(t, db.First(&profile, "user_id = ?", aliceUser.ID).Error)
	require.Contains(t, profile.CurrentProjects, project.ID.String())
}

func TestApproveApplication_IdempotentOnProjectFields(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	client := seedClient(t, db, "acme")
	fu, _ := seedFreelancer(t, db, "alice")
	project := seedProject(t, db, client, 500)
	app := placeBid(t, e, project, fu, client, 400)

	require.NoError(t, e.ApproveApplication(app.ID))
	require.NoError(t, e.ApproveApplication(app.ID))

	var got models.Project
	require.NoError(t, db.First(&got, "id = ?", project.ID).Error)
	require.Equal(t, models.ProjectAssigned, got.Status)
	require.Equal(t, fu.ID, got.FreelancerID)
	require.Equal(t, 400, got.Budget)
}

func TestApproveApplication_NotFound(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	require.ErrorIs(t, e.ApproveApplication(uuid.New()), ErrApplicationNotFound)
}

func TestRejectApplication(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	client := seedClient(t, db, "acme")
	fu, _ := seedFreelancer(t, db, "alice")
	project := seedProject(t, db, client, 500)
	app := placeBid(t, e, project, fu, client, 400)

	require.NoError(t, e.RejectApplication(app.ID))

	var gotApp models.Application
	require.NoError(t, db.First(&gotApp, "id = ?", app.ID).Error)
	require.Equal(t, models.ApplicationRejected, gotApp.Status)

	// nothing else moves
	var gotProject models.Project
	require.NoError(t, db.First(&gotProject, "id = ?", project.ID).Error)
	require.Equal(t, models.ProjectAvailable, gotProject.Status)
	require.Equal(t, uuid.Nil, gotProject.FreelancerID)
}

func TestSubmitWork(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	client := seedClient(t, db, "acme")
	project := seedProject(t, db, client, 500)

	// no status gate: submitting against an Available project still lands
	require.NoError(t, e.SubmitWork(project.ID, Submission{
		ProjectLink: "https://repo.test/work",
		ManualLink:  "https://docs.test/manual",
		Description: "done",
	}))

	var got models.Project
	require.NoError(t, db.First(&got, "id = ?", project.ID).Error)
	require.True(t, got.Submission)
	require.Equal(t, "https://repo.test/work", got.ProjectLink)
	require.Equal(t, "https://docs.test/manual", got.ManualLink)
	require.Equal(t, "done", got.SubmissionDescription)

	require.ErrorIs(t, e.SubmitWork(uuid.New(), Submission{}), ErrProjectNotFound)
}

func TestApproveSubmission_SettlesFunds(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	client := seedClient(t, db, "acme")
	fu, _ := seedFreelancer(t, db, "alice")
	project := seedProject(t, db, client, 500)
	app := placeBid(t, e, project, fu, client, 400)

	require.NoError(t, e.ApproveApplication(app.ID))
	require.NoError(t, e.SubmitWork(project.ID, Submission{ProjectLink: "https://repo.test/work"}))
	require.NoError(t, e.ApproveSubmission(project.ID))

	var gotProject models.Project
	require.NoError(t, db.First(&gotProject, "id = ?", project.ID).Error)
	require.Equal(t, models.ProjectCompleted, gotProject.Status)
	require.True(t, gotProject.SubmissionAccepted)

	var profile models.Freelancer
	require.NoError(t, db.First(&profile, "user_id = ?", fu.ID).Error)
	require.Equal(t, 400, profile.Funds, "credited with the assigned budget")
	require.NotContains(t, profile.CurrentProjects, project.ID.String())
	require.Contains(t, profile.CompletedProjects, project.ID.String())
}

func TestRejectSubmission_ClearsAndKeepsAssigned(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	client := seedClient(t, db, "acme")
	fu, _ := seedFreelancer(t, db, "alice")
	project := seedProject(t, db, client, 500)
	app := placeBid(t, e, project, fu, client, 400)

	require.NoError(t, e.ApproveApplication(app.ID))
	require.NoError(t, e.SubmitWork(project.ID, Submission{
		ProjectLink: "https://repo.test/work",
		ManualLink:  "https://docs.test/manual",
		Description: "first try",
	}))
	require.NoError(t, e.RejectSubmission(project.ID))

	var got models.Project
	require.NoError(t, db.First(&got, "id = ?", project.ID).Error)
	require.False(t, got.Submission)
	require.Empty(t, got.ProjectLink)
	require.Empty(t, got.ManualLink)
	require.Empty(t, got.SubmissionDescription)
	require.Equal(t, models.ProjectAssigned, got.Status, "freelancer can resubmit")

	var profile models.Freelancer
	require.NoError(t, db.First(&profile, "user_id = ?", fu.ID).Error)
	require.Zero(t, profile.Funds)
}
