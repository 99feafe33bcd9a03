package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/config"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/ai"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/repository"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

// ── test helpers ──

func ptr(f float64) *float64 { return &f }

type mockSnapshotRepo struct {
	mu     sync.Mutex
	stored map[string]*model.Snapshot
}

func newMockSnapshotRepo() *mockSnapshotRepo {
	return &mockSnapshotRepo{stored: make(map[string]*model.Snapshot)}
}

func (m *mockSnapshotRepo) Load(ctx context.Context, userID string) (*model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stored[userID]; ok {
		return s, nil
	}
	return &model.Snapshot{}, nil
}

func (m *mockSnapshotRepo) Save(ctx context.Context, userID string, s *model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored[userID] = s
	return nil
}

type mockUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*model.User
	byEmail map[string]*model.User
	seq     int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byID: make(map[string]*model.User), byEmail: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		m.seq++
		user.ID = fmt.Sprintf("user-%d", m.seq)
	}
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	return m.Create(ctx, user)
}

// mockGateway records requests and replays canned replies.
type mockGateway struct {
	reply   string
	err     error
	chunks  []string
	lastReq ai.Request
}

func (g *mockGateway) Generate(ctx context.Context, req ai.Request) (string, error) {
	g.lastReq = req
	return g.reply, g.err
}

func (g *mockGateway) GenerateStream(ctx context.Context, req ai.Request, onChunk func(string) error) error {
	g.lastReq = req
	if g.err != nil {
		return g.err
	}
	for _, c := range g.chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}

func setupSessions() *session.Manager {
	cfg := &config.SessionConfig{SaveDebounce: time.Hour, IdleTimeout: time.Hour}
	return session.NewManager(newMockSnapshotRepo(), cfg, zap.NewNop())
}

func setupRepo() *repository.Repository {
	return &repository.Repository{
		User:     newMockUserRepo(),
		Snapshot: newMockSnapshotRepo(),
	}
}

// seedCurso plants an active course with two periods, one subject and two
// students into the user's session.
func seedCurso(sessions *session.Manager, userID string) {
	sess := sessions.Acquire(context.Background(), userID)
	sess.Update(func(st *store.Store) {
		st.UpsertCurso(model.CursoLectivo{
			ID:          "c1",
			Year:        2026,
			TeacherName: "Docente Prueba",
			Periods: []model.Periodo{
				{Nombre: "I Semestre", FechaInicio: "2026-02-09", FechaFin: "2026-07-03"},
				{Nombre: "II Semestre", FechaInicio: "2026-07-20", FechaFin: "2026-12-18"},
			},
			Subjects: []string{"Ciencias"},
			Groups:   []string{"4-A"},
		})
		st.SetActiveCurso("c1")
		st.UpsertEstudiante(model.Estudiante{
			ID: "e1", CursoLectivoID: "c1", Nombre: "Ana", PrimerApellido: "Mora",
			FechaIngreso: "2026-02-09", Estado: model.EstadoActivo,
		})
		st.UpsertEstudiante(model.Estudiante{
			ID: "e2", CursoLectivoID: "c1", Nombre: "Luis", PrimerApellido: "Soto",
			FechaIngreso: "2026-02-09", Estado: model.EstadoActivo,
		})
	})
}

// ver reads a value out of the user's store for assertions.
func ver[T any](sessions *session.Manager, userID string, fn func(*store.Store) T) T {
	var out T
	sessions.Acquire(context.Background(), userID).View(func(st *store.Store) {
		out = fn(st)
	})
	return out
}
