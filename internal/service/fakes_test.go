package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/voidrp/community-backend/internal/domain"
	"github.com/voidrp/community-backend/internal/events"
	"github.com/voidrp/community-backend/internal/repository"
)

type fakePlayerRepo struct {
	mu      sync.Mutex
	players map[int64]*domain.Player
	logins  map[int64]int
}

func newFakePlayerRepo(players ...*domain.Player) *fakePlayerRepo {
	repo := &fakePlayerRepo{players: map[int64]*domain.Player{}, logins: map[int64]int{}}
	for _, player := range players {
		copied := *player
		repo.players[player.ID] = &copied
	}
	return repo
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int64) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if player, ok := r.players[id]; ok {
		copied := *player
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePlayerRepo) GetByName(_ context.Context, name string) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, player := range r.players {
		if strings.EqualFold(player.Name, name) {
			copied := *player
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePlayerRepo) GetByEmail(_ context.Context, email string) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, player := range r.players {
		if player.Email == email {
			copied := *player
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePlayerRepo) GetBySyncToken(_ context.Context, token string) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, player := range r.players {
		if player.SyncToken != nil && *player.SyncToken == token {
			copied := *player
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePlayerRepo) UpdateLastWebLogin(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return pgx.ErrNoRows
	}
	r.logins[id]++
	return nil
}

func (r *fakePlayerRepo) SetDiscordID(_ context.Context, syncToken, discordID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, player := range r.players {
		if player.SyncToken != nil && *player.SyncToken == syncToken {
			player.DiscordID = &discordID
			player.SyncToken = nil
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakePlayerRepo) ClearDiscordID(_ context.Context, discordID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, player := range r.players {
		if player.DiscordID != nil && *player.DiscordID == discordID {
			player.DiscordID = nil
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakePlayerRepo) ListTeam(_ context.Context, minPermLevel int) ([]repository.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var members []repository.TeamMember
	for _, player := range r.players {
		if player.PermLevel >= minPermLevel {
			members = append(members, repository.TeamMember{Name: player.Name, RankName: player.RankName})
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

func (r *fakePlayerRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.players)), nil
}

type fakeRankRepo struct {
	ranks map[string]*domain.Rank
}

func newFakeRankRepo(ranks ...*domain.Rank) *fakeRankRepo {
	repo := &fakeRankRepo{ranks: map[string]*domain.Rank{}}
	for _, rank := range ranks {
		copied := *rank
		repo.ranks[rank.Name] = &copied
	}
	return repo
}

func (r *fakeRankRepo) GetByName(_ context.Context, name string) (*domain.Rank, error) {
	if rank, ok := r.ranks[name]; ok {
		copied := *rank
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

type fakeTicketRepo struct {
	mu     sync.Mutex
	rows   []repository.TicketRow
	nextID int64
	names  map[int64]string
	clock  time.Time
}

func newFakeTicketRepo(names map[int64]string) *fakeTicketRepo {
	return &fakeTicketRepo{names: names, clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.clock = r.clock.Add(time.Minute)
	ticket.ID = r.nextID
	ticket.CreatedAt = r.clock
	r.rows = append(r.rows, repository.TicketRow{Ticket: *ticket, CreatorName: r.names[ticket.CreatorID]})
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id int64) (*repository.TicketRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			copied := r.rows[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListByCreator(_ context.Context, creatorID int64, includeClosed bool, limit, offset int) ([]repository.TicketRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []repository.TicketRow
	for i := len(r.rows) - 1; i >= 0; i-- {
		row := r.rows[i]
		if row.CreatorID != creatorID {
			continue
		}
		if !includeClosed && row.Closed {
			continue
		}
		matched = append(matched, row)
	}
	return slicePage(matched, limit, offset), nil
}

func (r *fakeTicketRepo) CountByCreator(_ context.Context, creatorID int64, includeClosed bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, row := range r.rows {
		if row.CreatorID != creatorID {
			continue
		}
		if !includeClosed && row.Closed {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeTicketRepo) Search(_ context.Context, term string, limit, offset int) ([]repository.TicketRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []repository.TicketRow
	for i := len(r.rows) - 1; i >= 0; i-- {
		row := r.rows[i]
		if strings.Contains(row.Title, term) || strings.Contains(row.Message, term) {
			matched = append(matched, row)
		}
	}
	return slicePage(matched, limit, offset), nil
}

func (r *fakeTicketRepo) Close(_ context.Context, id, closerID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		if r.rows[i].Closed {
			return false, nil
		}
		now := r.clock.Add(time.Hour)
		r.rows[i].Closed = true
		r.rows[i].ClosedBy = &closerID
		r.rows[i].ClosedAt = &now
		return true, nil
	}
	return false, nil
}

func slicePage(rows []repository.TicketRow, limit, offset int) []repository.TicketRow {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

type fakeMessageRepo struct {
	mu      sync.Mutex
	msgs    []domain.TicketMessage
	nextID  int64
	players *fakePlayerRepo
	ranks   *fakeRankRepo
	clock   time.Time
}

func newFakeMessageRepo(players *fakePlayerRepo, ranks *fakeRankRepo) *fakeMessageRepo {
	return &fakeMessageRepo{players: players, ranks: ranks, clock: time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.TicketMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.clock = r.clock.Add(time.Second)
	msg.ID = r.nextID
	msg.SentAt = r.clock
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id int64) (*domain.TicketMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].ID == id {
			copied := r.msgs[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeMessageRepo) ListThread(ctx context.Context, ticketID int64) ([]domain.ThreadMessage, error) {
	r.mu.Lock()
	msgs := make([]domain.TicketMessage, 0, len(r.msgs))
	for _, msg := range r.msgs {
		if msg.TicketID == ticketID {
			msgs = append(msgs, msg)
		}
	}
	r.mu.Unlock()

	sort.Slice(msgs, func(i, j int) bool { return msgs[i].SentAt.Before(msgs[j].SentAt) })

	result := make([]domain.ThreadMessage, 0, len(msgs))
	for _, msg := range msgs {
		thread := domain.ThreadMessage{TicketMessage: msg}
		if sender, err := r.players.GetByID(ctx, msg.SenderID); err == nil {
			thread.SenderName = sender.Name
			if sender.RankName != nil {
				if rank, err := r.ranks.GetByName(ctx, *sender.RankName); err == nil {
					thread.RankName = &rank.Name
					thread.RankColor = &rank.HexColor
				}
			}
		}
		result = append(result, thread)
	}
	return result, nil
}

func (r *fakeMessageRepo) UpdateText(_ context.Context, id int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].ID == id {
			r.msgs[i].Text = text
			r.msgs[i].Edited = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeMessageRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].ID == id {
			r.msgs = append(r.msgs[:i], r.msgs[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeCategoryRepo struct {
	categories []domain.TicketCategory
}

func (r *fakeCategoryRepo) ListAll(_ context.Context) ([]domain.TicketCategory, error) {
	return append([]domain.TicketCategory{}, r.categories...), nil
}

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var matched []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}
