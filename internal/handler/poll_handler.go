package handler

import (
	"net/http"
	"time"

	"nestify/internal/middleware"
	"nestify/internal/model"
	"nestify/internal/polling"
	"nestify/pkg/database"
	"nestify/pkg/logger"
	"nestify/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PollResponse is the read-time projection of a poll with its tally
type PollResponse struct {
	ID         uint       `json:"id"`
	SocietyID  uint       `json:"society_id"`
	Question   string     `json:"question"`
	Options    []string   `json:"options"`
	CreatedBy  uint       `json:"created_by"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	VoteCounts []int      `json:"vote_counts"`
	TotalVotes int        `json:"total_votes"`
	UserVoted  *int       `json:"user_voted,omitempty"`
}

func pollResponse(poll *model.Poll, tally polling.Result) PollResponse {
	return PollResponse{
		ID:         poll.ID,
		SocietyID:  poll.SocietyID,
		Question:   poll.Question,
		Options:    poll.OptionList(),
		CreatedBy:  poll.CreatedBy,
		IsActive:   poll.IsActive,
		ExpiresAt:  poll.ExpiresAt,
		CreatedAt:  poll.CreatedAt,
		VoteCounts: tally.VoteCounts,
		TotalVotes: tally.TotalVotes,
		UserVoted:  tally.UserVoted,
	}
}

// ListPolls returns the active polls of the caller's society with
// per-option counts and the caller's own vote
func ListPolls(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	if user.SocietyID == nil {
		return c.JSON(http.StatusOK, []PollResponse{})
	}

	var polls []model.Poll
	result := db.Where("society_id = ? AND is_active = ?", *user.SocietyID, true).
		Order("created_at desc").
		Find(&polls)
	if result.Error != nil {
		log.Error("Failed to list polls", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve polls"})
	}

	responses := make([]PollResponse, 0, len(polls))
	for i := range polls {
		var votes []model.Vote
		if result := db.Where("poll_id = ?", polls[i].ID).Find(&votes); result.Error != nil {
			log.Error("Failed to load votes", zap.Uint("poll_id", polls[i].ID), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve polls"})
		}
		tally := polling.Tally(polls[i].OptionList(), votes, user.ID)
		responses = append(responses, pollResponse(&polls[i], tally))
	}
	return c.JSON(http.StatusOK, responses)
}

// PollRequest defines the structure for poll creation
type PollRequest struct {
	SocietyID *uint      `json:"society_id,omitempty"`
	Question  string     `json:"question"`
	Options   []string   `json:"options"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func CreatePoll(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	var req PollRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	societyID := req.SocietyID
	if societyID == nil {
		societyID = user.SocietyID
	}
	if societyID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "society ID required"})
	}
	if req.Question == "" || len(req.Options) < 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "question and at least two options are required"})
	}

	poll := model.Poll{
		SocietyID: *societyID,
		Question:  req.Question,
		CreatedBy: user.ID,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}
	if err := poll.SetOptions(req.Options); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid options"})
	}
	if result := database.GetDB().Create(&poll); result.Error != nil {
		log.Error("Failed to create poll", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create poll"})
	}

	log.Info("Poll created",
		zap.Uint("poll_id", poll.ID),
		zap.Int("options", len(req.Options)))
	// A fresh poll reports a zero count vector sized to its options
	return c.JSON(http.StatusCreated, pollResponse(&poll, polling.Tally(req.Options, nil, user.ID)))
}

// CastVote records a user's choice on an active poll. Votes are
// immutable; a second vote on the same poll is rejected.
func CastVote(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var req struct {
		OptionIndex int `json:"option_index"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var poll model.Poll
	result := db.Where("id = ? AND is_active = ?", c.Param("id"), true).First(&poll)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "poll not found or inactive"})
	}

	if req.OptionIndex < 0 || req.OptionIndex >= len(poll.OptionList()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid option"})
	}

	var existing model.Vote
	if result := db.Where("poll_id = ? AND user_id = ?", poll.ID, user.ID).First(&existing); result.Error == nil {
		log.Warn("Duplicate vote rejected",
			zap.Uint("poll_id", poll.ID),
			zap.Uint("user_id", user.ID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "already voted"})
	}

	vote := model.Vote{
		PollID:      poll.ID,
		UserID:      user.ID,
		OptionIndex: req.OptionIndex,
	}
	if result := db.Create(&vote); result.Error != nil {
		log.Error("Failed to cast vote", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cast vote"})
	}

	prometheus.VoteCounter.Inc()
	log.Info("Vote cast",
		zap.Uint("poll_id", poll.ID),
		zap.Int("option_index", vote.OptionIndex))
	return c.JSON(http.StatusCreated, vote)
}
