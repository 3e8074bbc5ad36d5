package lifecycle

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Adhisheshu1210/sb-works-backend/internal/models"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrFreelancerNotFound  = errors.New("freelancer not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrApplicationNotFound = errors.New("application not found")
)

// Engine owns the project state machine: bidding, approval, assignment,
// submission and settlement. Each transition runs inside a single database
// transaction so concurrent transitions on the same records serialize instead
// of clobbering each other; the uncontended path behaves exactly like a
// single-writer read-modify-save.
type Engine struct {
	DB *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{DB: db}
}

type BidInput struct {
	ProjectID     uuid.UUID
	FreelancerID  uuid.UUID
	ClientID      uuid.UUID
	Proposal      string
	BidAmount     int
	EstimatedTime int
}

// PlaceBid creates a Pending application snapshotting the project and the
// freelancer as they are right now, and records the bid on the project.
// The same freelancer may bid twice; only the UI prevents that.
func (e *Engine) PlaceBid(in BidInput) (*models.Application, error) {
	var app models.Application
	err := e.DB.Transaction(func(tx *gorm.DB) error {
		var freelancerUser models.User
		if err := tx.First(&freelancerUser, "id = ?", in.FreelancerID).Error; err != nil {
			return notFound(err, ErrUserNotFound)
		}
		var profile models.Freelancer
		if err := tx.First(&profile, "user_id = ?", in.FreelancerID).Error; err != nil {
			return notFound(err, ErrFreelancerNotFound)
		}
		var project models.Project
		if err := tx.First(&project, "id = ?", in.ProjectID).Error; err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		var client models.User
		if err := tx.First(&client, "id = ?", in.ClientID).Error; err != nil {
			return notFound(err, ErrUserNotFound)
		}

		app = models.Application{
			ProjectID:        project.ID,
			ClientID:         client.ID,
			ClientName:       client.Username,
			ClientEmail:      client.Email,
			FreelancerID:     freelancerUser.ID,
			FreelancerName:   freelancerUser.Username,
			FreelancerEmail:  freelancerUser.Email,
			FreelancerSkills: profile.Skills,
			Title:            project.Title,
			Description:      project.Description,
			Budget:           project.Budget,
			RequiredSkills:   project.Skills,
			Proposal:         in.Proposal,
			BidAmount:        in.BidAmount,
			EstimatedTime:    in.EstimatedTime,
			Status:           models.ApplicationPending,
		}
		if err := tx.Create(&app).Error; err != nil {
			return err
		}

		project.Bids = append(project.Bids, freelancerUser.ID.String())
		project.BidAmounts = append(project.BidAmounts, in.BidAmount)
		if err := tx.Save(&project).Error; err != nil {
			return err
		}

		profile.Applications = append(profile.Applications, app.ID.String())
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ApproveApplication accepts one bid and rejects every other Pending bid on
// the same project. The accepted bid amount becomes the project budget,
// replacing the client's original ask, and the project moves to Assigned.
// No status precondition is checked; re-approving yields the same end state
// on the project fields.
func (e *Engine) ApproveApplication(applicationID uuid.UUID) error {
	return e.DB.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, "id = ?", applicationID).Error; err != nil {
			return notFound(err, ErrApplicationNotFound)
		}
		var project models.Project
		if err := tx.First(&project, "id = ?", app.ProjectID).Error; err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		var profile models.Freelancer
		if err := tx.First(&profile, "user_id = ?", app.FreelancerID).Error; err != nil {
			return notFound(err, ErrFreelancerNotFound)
		}
		var user models.User
		if err := tx.First(&user, "id = ?", app.FreelancerID).Error; err != nil {
			return notFound(err, ErrUserNotFound)
		}

		app.Status = models.ApplicationAccepted
		if err := tx.Save(&app).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Application{}).
			Where("project_id = ? AND id <> ? AND status = ?",
				app.ProjectID, app.ID, models.ApplicationPending).
			Update("status", models.ApplicationRejected).Error; err != nil {
			return err
		}

		project.FreelancerID = profile.UserID
		project.FreelancerName = user.Username
		project.Budget = app.BidAmount
		project.Status = models.ProjectAssigned
		if err := tx.Save(&project).Error; err != nil {
			return err
		}

		profile.CurrentProjects = append(profile.CurrentProjects, project.ID.String())
		return tx.Save(&profile).Error
	})
}

// RejectApplication marks the application Rejected. Nothing else changes.
func (e *Engine) RejectApplication(applicationID uuid.UUID) error {
	return e.DB.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, "id = ?", applicationID).Error; err != nil {
			return notFound(err, ErrApplicationNotFound)
		}
		app.Status = models.ApplicationRejected
		return tx.Save(&app).Error
	})
}

type Submission struct {
	ProjectLink string
	ManualLink  string
	Description string
}

// SubmitWork records the submission fields and flags the project submitted.
// There is no status gate: resubmitting over an earlier submission just
// overwrites it.
func (e *Engine) SubmitWork(projectID uuid.UUID, sub Submission) error {
	return e.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		project.ProjectLink = sub.ProjectLink
		project.ManualLink = sub.ManualLink
		project.SubmissionDescription = sub.Description
		project.Submission = true
		return tx.Save(&project).Error
	})
}

// ApproveSubmission completes the project and settles funds: the project id
// moves from the freelancer's current list to the completed list and the
// project budget is credited to their funds with an atomic add.
func (e *Engine) ApproveSubmission(projectID uuid.UUID) error {
	return e.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		var profile models.Freelancer
		if err := tx.First(&profile, "user_id = ?", project.FreelancerID).Error; err != nil {
			return notFound(err, ErrFreelancerNotFound)
		}

		project.SubmissionAccepted = true
		project.Status = models.ProjectCompleted
		if err := tx.Save(&project).Error; err != nil {
			return err
		}

		current := make(datatypes.JSONSlice[string], 0, len(profile.CurrentProjects))
		for _, id := range profile.CurrentProjects {
			if id != project.ID.String() {
				current = append(current, id)
			}
		}
		completed := append(profile.CompletedProjects, project.ID.String())

		return tx.Model(&models.Freelancer{}).
			Where("id = ?", profile.ID).
			Updates(map[string]interface{}{
				"current_projects":   current,
				"completed_projects": completed,
				"funds":              gorm.Expr("funds + ?", project.Budget),
			}).Error
	})
}

// RejectSubmission clears the submission so the freelancer can redo the work.
// The project stays Assigned.
func (e *Engine) RejectSubmission(projectID uuid.UUID) error {
	return e.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		project.Submission = false
		project.ProjectLink = ""
		project.ManualLink = ""
		project.SubmissionDescription = ""
		return tx.Save(&project).Error
	})
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
