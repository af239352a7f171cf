package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"quorum/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "quorum/contexts/election-core/ballot-engine/domain/errors"
	"quorum/contexts/election-core/ballot-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Repository persists election aggregates. SaveElection runs inside one
// gorm transaction so the aggregate rows and outbox rows commit together.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateElection(ctx context.Context, election entities.Election, envelopes []ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := electionModelFromEntity(election)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyInitialized
			}
			return r.logError("ballot_repo_create_election_failed", err,
				"election_id", strings.TrimSpace(election.ElectionID),
			)
		}
		return r.persistChildren(tx, election, envelopes)
	})
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	electionID = strings.TrimSpace(electionID)

	var row electionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", electionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("ballot_repo_get_election_failed", err, "election_id", electionID)
	}

	var voterRows []voterModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Find(&voterRows).Error; err != nil {
		return entities.Election{}, r.logError("ballot_repo_list_voters_failed", err, "election_id", electionID)
	}

	var proposalRows []proposalModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("idx ASC").
		Find(&proposalRows).Error; err != nil {
		return entities.Election{}, r.logError("ballot_repo_list_proposals_failed", err, "election_id", electionID)
	}

	var ballotRows []ballotModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Find(&ballotRows).Error; err != nil {
		return entities.Election{}, r.logError("ballot_repo_list_ballots_failed", err, "election_id", electionID)
	}

	return assembleElection(row, voterRows, proposalRows, ballotRows), nil
}

func (r *Repository) SaveElection(ctx context.Context, election entities.Election, envelopes []ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := electionModelFromEntity(election)
		update := tx.Model(&electionModel{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"phase":               row.Phase,
				"winner_computed":     row.WinnerComputed,
				"winning_proposal_id": row.WinningProposalID,
				"updated_at":          row.UpdatedAt,
			})
		if update.Error != nil {
			return r.logError("ballot_repo_save_election_failed", update.Error,
				"election_id", strings.TrimSpace(election.ElectionID),
			)
		}
		if update.RowsAffected == 0 {
			return domainerrors.ErrElectionNotFound
		}
		return r.persistChildren(tx, election, envelopes)
	})
}

// persistChildren upserts registry rows and appends outbox rows inside the
// caller's transaction.
func (r *Repository) persistChildren(tx *gorm.DB, election entities.Election, envelopes []ports.EventEnvelope) error {
	electionID := strings.TrimSpace(election.ElectionID)

	for _, voter := range election.Voters {
		row := voterModelFromEntity(electionID, voter)
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "election_id"}, {Name: "address"}},
			DoUpdates: clause.Assignments(map[string]any{
				"has_voted":         row.HasVoted,
				"voted_proposal_id": row.VotedProposalID,
				"voted_at":          row.VotedAt,
			}),
		}).Create(&row).Error
		if err != nil {
			return r.logError("ballot_repo_save_voter_failed", err,
				"election_id", electionID,
				"voter_address", voter.Address,
			)
		}
	}

	for _, proposal := range election.Proposals {
		row := proposalModelFromEntity(electionID, proposal)
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "election_id"}, {Name: "idx"}},
			DoUpdates: clause.Assignments(map[string]any{
				"vote_count": row.VoteCount,
			}),
		}).Create(&row).Error
		if err != nil {
			return r.logError("ballot_repo_save_proposal_failed", err,
				"election_id", electionID,
				"proposal_id", proposal.Index,
			)
		}
	}

	for _, receipt := range election.Ballots {
		row := ballotModelFromEntity(electionID, receipt)
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "election_id"}, {Name: "voter_address"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return r.logError("ballot_repo_save_ballot_failed", err,
				"election_id", electionID,
				"voter_address", receipt.VoterAddress,
			)
		}
	}

	for _, envelope := range envelopes {
		payload, err := json.Marshal(envelope)
		if err != nil {
			return err
		}
		row := outboxModel{
			OutboxID:     strings.TrimSpace(envelope.EventID),
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			Status:       outboxStatusPending,
			CreatedAt:    envelope.OccurredAt.UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrConflict
			}
			return r.logError("ballot_repo_append_outbox_failed", err,
				"election_id", electionID,
				"event_id", envelope.EventID,
			)
		}
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("ballot_repo_list_pending_outbox_failed", err)
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	publishedAt = publishedAt.UTC()
	update := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &publishedAt,
		})
	if update.Error != nil {
		return r.logError("ballot_repo_mark_outbox_published_failed", update.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-core/ballot-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("ballot repository operation failed", fields...)
	return err
}

type electionModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	Name              string    `gorm:"column:name"`
	AdminAddress      string    `gorm:"column:admin_address"`
	Phase             string    `gorm:"column:phase"`
	WinnerComputed    bool      `gorm:"column:winner_computed"`
	WinningProposalID int       `gorm:"column:winning_proposal_id"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

type voterModel struct {
	ElectionID      string     `gorm:"column:election_id;primaryKey"`
	Address         string     `gorm:"column:address;primaryKey"`
	Registered      bool       `gorm:"column:registered"`
	HasVoted        bool       `gorm:"column:has_voted"`
	VotedProposalID int        `gorm:"column:voted_proposal_id"`
	RegisteredAt    time.Time  `gorm:"column:registered_at"`
	VotedAt         *time.Time `gorm:"column:voted_at"`
}

func (voterModel) TableName() string {
	return "election_voters"
}

type proposalModel struct {
	ElectionID  string    `gorm:"column:election_id;primaryKey"`
	Index       int       `gorm:"column:idx;primaryKey"`
	Description string    `gorm:"column:description"`
	VoteCount   int       `gorm:"column:vote_count"`
	SubmittedBy string    `gorm:"column:submitted_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (proposalModel) TableName() string {
	return "election_proposals"
}

type ballotModel struct {
	ElectionID   string    `gorm:"column:election_id;primaryKey"`
	VoterAddress string    `gorm:"column:voter_address;primaryKey"`
	ProposalID   int       `gorm:"column:proposal_id"`
	Description  string    `gorm:"column:description"`
	CastAt       time.Time `gorm:"column:cast_at"`
}

func (ballotModel) TableName() string {
	return "election_ballots"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "ballot_outbox"
}

func electionModelFromEntity(item entities.Election) electionModel {
	row := electionModel{
		ID:                strings.TrimSpace(item.ElectionID),
		Name:              item.Name,
		AdminAddress:      item.AdminAddress,
		Phase:             string(item.Phase),
		WinnerComputed:    item.WinnerComputed,
		WinningProposalID: item.WinningProposalID,
		CreatedAt:         item.CreatedAt.UTC(),
		UpdatedAt:         item.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func voterModelFromEntity(electionID string, item entities.Voter) voterModel {
	row := voterModel{
		ElectionID:      electionID,
		Address:         item.Address,
		Registered:      item.Registered,
		HasVoted:        item.HasVoted,
		VotedProposalID: item.VotedProposalID,
		RegisteredAt:    item.RegisteredAt.UTC(),
	}
	if item.HasVoted {
		votedAt := item.VotedAt.UTC()
		row.VotedAt = &votedAt
	}
	return row
}

func proposalModelFromEntity(electionID string, item entities.Proposal) proposalModel {
	return proposalModel{
		ElectionID:  electionID,
		Index:       item.Index,
		Description: item.Description,
		VoteCount:   item.VoteCount,
		SubmittedBy: item.SubmittedBy,
		CreatedAt:   item.CreatedAt.UTC(),
	}
}

func ballotModelFromEntity(electionID string, item entities.BallotReceipt) ballotModel {
	return ballotModel{
		ElectionID:   electionID,
		VoterAddress: item.VoterAddress,
		ProposalID:   item.ProposalID,
		Description:  item.Description,
		CastAt:       item.CastAt.UTC(),
	}
}

func assembleElection(
	row electionModel,
	voterRows []voterModel,
	proposalRows []proposalModel,
	ballotRows []ballotModel,
) entities.Election {
	voters := make(map[string]entities.Voter, len(voterRows))
	for _, item := range voterRows {
		voter := entities.Voter{
			Address:         item.Address,
			Registered:      item.Registered,
			HasVoted:        item.HasVoted,
			VotedProposalID: item.VotedProposalID,
			RegisteredAt:    item.RegisteredAt.UTC(),
		}
		if item.VotedAt != nil {
			voter.VotedAt = item.VotedAt.UTC()
		}
		voters[item.Address] = voter
	}

	proposals := make([]entities.Proposal, 0, len(proposalRows))
	for _, item := range proposalRows {
		proposals = append(proposals, entities.Proposal{
			Index:       item.Index,
			Description: item.Description,
			VoteCount:   item.VoteCount,
			SubmittedBy: item.SubmittedBy,
			CreatedAt:   item.CreatedAt.UTC(),
		})
	}

	ballots := make(map[string]entities.BallotReceipt, len(ballotRows))
	for _, item := range ballotRows {
		ballots[item.VoterAddress] = entities.BallotReceipt{
			VoterAddress: item.VoterAddress,
			ProposalID:   item.ProposalID,
			Description:  item.Description,
			CastAt:       item.CastAt.UTC(),
		}
	}

	return entities.Election{
		ElectionID:        row.ID,
		Name:              row.Name,
		AdminAddress:      row.AdminAddress,
		Phase:             entities.Phase(row.Phase),
		Voters:            voters,
		Proposals:         proposals,
		Ballots:           ballots,
		WinnerComputed:    row.WinnerComputed,
		WinningProposalID: row.WinningProposalID,
		CreatedAt:         row.CreatedAt.UTC(),
		UpdatedAt:         row.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ElectionRepository = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
