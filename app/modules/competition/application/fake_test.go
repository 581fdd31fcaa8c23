package competitionservice

import (
	"context"
	"sync"

	competitiondb "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Competition Repo
// ------------------------

// FakeCompetitionRepo keeps pages and participants in memory unless a Func
// override is set.
type FakeCompetitionRepo struct {
	mu    sync.Mutex
	trace []string

	Pages        map[string]string
	Participants []competitiondb.Participant

	LoadPageFunc           func(ctx context.Context, db bun.IDB, pageID string) (string, error)
	SavePageFunc           func(ctx context.Context, db bun.IDB, pageID, text string) error
	ListParticipantsFunc   func(ctx context.Context, db bun.IDB) ([]competitiondb.Participant, error)
	UpsertParticipantsFunc func(ctx context.Context, db bun.IDB, participants []competitiondb.Participant) error
}

func NewFakeCompetitionRepo() *FakeCompetitionRepo {
	return &FakeCompetitionRepo{
		trace: []string{},
		Pages: map[string]string{},
	}
}

func (f *FakeCompetitionRepo) record(step string) {
	f.mu.Lock()
	f.trace = append(f.trace, step)
	f.mu.Unlock()
}

// --- Repository Interface Implementation ---

func (f *FakeCompetitionRepo) LoadPage(ctx context.Context, db bun.IDB, pageID string) (string, error) {
	f.record("LoadPage:" + pageID)
	if f.LoadPageFunc != nil {
		return f.LoadPageFunc(ctx, db, pageID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	text, ok := f.Pages[pageID]
	if !ok {
		return "", competitiondb.ErrNotFound
	}
	return text, nil
}

func (f *FakeCompetitionRepo) SavePage(ctx context.Context, db bun.IDB, pageID, text string) error {
	f.record("SavePage:" + pageID)
	if f.SavePageFunc != nil {
		return f.SavePageFunc(ctx, db, pageID, text)
	}
	f.mu.Lock()
	f.Pages[pageID] = text
	f.mu.Unlock()
	return nil
}

func (f *FakeCompetitionRepo) ListParticipants(ctx context.Context, db bun.IDB) ([]competitiondb.Participant, error) {
	f.record("ListParticipants")
	if f.ListParticipantsFunc != nil {
		return f.ListParticipantsFunc(ctx, db)
	}
	return f.Participants, nil
}

func (f *FakeCompetitionRepo) UpsertParticipants(ctx context.Context, db bun.IDB, participants []competitiondb.Participant) error {
	f.record("UpsertParticipants")
	if f.UpsertParticipantsFunc != nil {
		return f.UpsertParticipantsFunc(ctx, db, participants)
	}
	f.Participants = append(f.Participants, participants...)
	return nil
}

// --- Accessors for assertions ---

func (f *FakeCompetitionRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeCompetitionRepo) Page(pageID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Pages[pageID]
}

var _ competitiondb.Repository = (*FakeCompetitionRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type publishedMessage struct {
	Topic   string
	Message *message.Message
}

type FakePublisher struct {
	mu        sync.Mutex
	published []publishedMessage

	PublishErr  error
	PublishFunc func(topic string, messages ...*message.Message) error
}

func (p *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	if p.PublishFunc != nil {
		return p.PublishFunc(topic, messages...)
	}
	if p.PublishErr != nil {
		return p.PublishErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range messages {
		p.published = append(p.published, publishedMessage{Topic: topic, Message: m})
	}
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.published))
	for i, m := range p.published {
		out[i] = m.Topic
	}
	return out
}

func (p *FakePublisher) Messages() []publishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedMessage(nil), p.published...)
}

var _ message.Publisher = (*FakePublisher)(nil)
