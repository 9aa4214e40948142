package application

import (
	"context"
	"sync"

	"guildcal/internal/domain"
	"guildcal/internal/domain/entities"
	"guildcal/internal/ports/output"
	"guildcal/internal/render"
)

// In-memory fakes for the output ports.

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[string]*entities.Event // guildID/eventID
	refs   map[string][]entities.EventRef
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[string]*entities.Event),
		refs:   make(map[string][]entities.EventRef),
	}
}

func eventKey(guildID, eventID string) string { return guildID + "/" + eventID }

func (r *fakeEventRepo) Create(ctx context.Context, event *entities.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *event
	r.events[eventKey(event.GuildID, event.ID)] = &clone
	r.refs[event.OrganizerID] = append(r.refs[event.OrganizerID], entities.EventRef{
		EventID: event.ID, GuildID: event.GuildID, Name: event.Name, StartsAt: event.StartsAt,
	})
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, guildID, eventID string) (*entities.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventKey(guildID, eventID)]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *event
	return &clone, nil
}

func (r *fakeEventRepo) FindByGuildID(ctx context.Context, guildID string) ([]entities.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Event
	for _, e := range r.events {
		if e.GuildID == guildID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) FindByOrganizerID(ctx context.Context, userID string) ([]entities.EventRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.EventRef(nil), r.refs[userID]...), nil
}

func (r *fakeEventRepo) UpdateRoster(ctx context.Context, guildID, eventID string, mutate func(*entities.Event) error) (*entities.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventKey(guildID, eventID)]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	if err := mutate(event); err != nil {
		return nil, err
	}
	clone := *event
	return &clone, nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, guildID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[eventKey(guildID, eventID)]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, eventKey(guildID, eventID))
	return nil
}

func (r *fakeEventRepo) ResetGuild(ctx context.Context, guildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.events {
		if e.GuildID == guildID {
			delete(r.events, key)
		}
	}
	for user, refs := range r.refs {
		kept := refs[:0]
		for _, ref := range refs {
			if ref.GuildID != guildID {
				kept = append(kept, ref)
			}
		}
		r.refs[user] = kept
	}
	return nil
}

type fakeBindingRepo struct {
	mu      sync.Mutex
	byMsg   map[string]*entities.DisplayBinding
	byEvent map[string]*entities.DisplayBinding
}

func newFakeBindingRepo() *fakeBindingRepo {
	return &fakeBindingRepo{
		byMsg:   make(map[string]*entities.DisplayBinding),
		byEvent: make(map[string]*entities.DisplayBinding),
	}
}

func (r *fakeBindingRepo) Bind(ctx context.Context, b *entities.DisplayBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byMsg[b.GuildID+"/"+b.ChannelID+"/"+b.MessageID] = b
	r.byEvent[b.GuildID+"/"+b.EventID] = b
	return nil
}

func (r *fakeBindingRepo) FindByMessage(ctx context.Context, guildID, channelID, messageID string) (*entities.DisplayBinding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byMsg[guildID+"/"+channelID+"/"+messageID]
	if !ok {
		return nil, domain.ErrBindingNotFound
	}
	return b, nil
}

func (r *fakeBindingRepo) FindByEventID(ctx context.Context, guildID, eventID string) (*entities.DisplayBinding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byEvent[guildID+"/"+eventID]
	if !ok {
		return nil, domain.ErrBindingNotFound
	}
	return b, nil
}

func (r *fakeBindingRepo) Release(ctx context.Context, guildID, channelID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := guildID + "/" + channelID + "/" + messageID
	b, ok := r.byMsg[key]
	if !ok {
		return domain.ErrBindingNotFound
	}
	delete(r.byMsg, key)
	delete(r.byEvent, guildID+"/"+b.EventID)
	return nil
}

type fakePrefRepo struct {
	mu         sync.Mutex
	userZones  map[string]string
	guildZones map[string][]string
	vocabs     map[string]domain.Vocabulary

	// load counters, for cache assertions
	userLoads  int
	guildLoads int
}

func newFakePrefRepo() *fakePrefRepo {
	return &fakePrefRepo{
		userZones:  make(map[string]string),
		guildZones: make(map[string][]string),
		vocabs:     make(map[string]domain.Vocabulary),
	}
}

func (r *fakePrefRepo) UserTimezone(ctx context.Context, userID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userLoads++
	return r.userZones[userID], nil
}

func (r *fakePrefRepo) SetUserTimezone(ctx context.Context, userID, zone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userZones[userID] = zone
	return nil
}

func (r *fakePrefRepo) RemoveUserTimezone(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.userZones, userID)
	return nil
}

func (r *fakePrefRepo) GuildTimezones(ctx context.Context, guildID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guildLoads++
	return append([]string(nil), r.guildZones[guildID]...), nil
}

func (r *fakePrefRepo) SetGuildTimezones(ctx context.Context, guildID string, zones []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guildZones[guildID] = append([]string(nil), zones...)
	return nil
}

func (r *fakePrefRepo) GuildVocabulary(ctx context.Context, guildID string) (domain.Vocabulary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vocabs[guildID], nil
}

func (r *fakePrefRepo) SetGuildVocabulary(ctx context.Context, guildID string, vocab domain.Vocabulary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vocabs[guildID] = vocab
	return nil
}

type fakeNotifier struct {
	mu          sync.Mutex
	retractions []string // "symbol:user"
	dms         []string // "user:content"
	edits       []output.MessageRef
	editCh      chan struct{}

	// held symbols reported by UserSignals, keyed by messageID/userID
	signals map[string][]string
	// symbols whose removal is rejected with ErrPermissionDenied
	denySymbols map[string]bool
	signalsErr  error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		editCh:      make(chan struct{}, 16),
		signals:     make(map[string][]string),
		denySymbols: make(map[string]bool),
	}
}

func (n *fakeNotifier) PostSummary(ctx context.Context, channelID string, sum *render.Summary, attachment *output.Attachment) (output.MessageRef, error) {
	return output.MessageRef{ChannelID: channelID, MessageID: "m-posted"}, nil
}

func (n *fakeNotifier) EditSummary(ctx context.Context, ref output.MessageRef, sum *render.Summary) error {
	n.mu.Lock()
	n.edits = append(n.edits, ref)
	n.mu.Unlock()
	select {
	case n.editCh <- struct{}{}:
	default:
	}
	return nil
}

func (n *fakeNotifier) DeleteMessage(ctx context.Context, ref output.MessageRef) error { return nil }

func (n *fakeNotifier) AddSignal(ctx context.Context, ref output.MessageRef, symbol string) error {
	return nil
}

func (n *fakeNotifier) RemoveSignal(ctx context.Context, ref output.MessageRef, symbol, userID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.denySymbols[symbol] {
		return domain.ErrPermissionDenied
	}
	n.retractions = append(n.retractions, symbol+":"+userID)
	return nil
}

func (n *fakeNotifier) UserSignals(ctx context.Context, ref output.MessageRef, userID string) ([]string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.signalsErr != nil {
		return nil, n.signalsErr
	}
	return n.signals[ref.MessageID+"/"+userID], nil
}

func (n *fakeNotifier) NotifyUser(ctx context.Context, userID, content string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dms = append(n.dms, userID+":"+content)
	return nil
}

func (n *fakeNotifier) retracted() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.retractions...)
}

func (n *fakeNotifier) sentDMs() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.dms...)
}

type fakeIdentity struct {
	names map[string]string
}

func (r *fakeIdentity) DisplayName(ctx context.Context, guildID, userID string) (string, error) {
	name, ok := r.names[userID]
	if !ok {
		return userID, nil
	}
	return name, nil
}

type fakeTranslator struct{}

func (fakeTranslator) T(locale, key string, data map[string]any) string { return key }

type fakeExporter struct {
	err error
}

func (e *fakeExporter) ToPortableFormat(event *entities.Event) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []byte("BEGIN:VCALENDAR\r\nUID:" + event.ID + "\r\nEND:VCALENDAR\r\n"), nil
}

func (e *fakeExporter) ToPortableCalendar(events []entities.Event) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	var b []byte
	b = append(b, "BEGIN:VCALENDAR\r\n"...)
	for _, event := range events {
		b = append(b, "UID:"+event.ID+"\r\n"...)
	}
	return append(b, "END:VCALENDAR\r\n"...), nil
}
