package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cbodonnell/descent/pkg/repositories/models"
)

const (
	usersFile     = "users.json"
	buildingsFile = "buildings.json"
	resourcesFile = "resources.json"
)

type usersDocument struct {
	Users map[string]models.User `json:"users"`
}

type buildingsDocument struct {
	Buildings []models.Building `json:"buildings"`
}

type resourcesDocument struct {
	Resources []models.Resource `json:"resources"`
}

// JSONFileRepository stores users, buildings and resources as flat JSON
// files under a data directory, rewriting each file in full on mutation.
type JSONFileRepository struct {
	dataDir string
	lock    sync.Mutex
}

func NewJSONFileRepository(dataDir string) (*JSONFileRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}
	return &JSONFileRepository{
		dataDir: dataDir,
	}, nil
}

func (r *JSONFileRepository) Close(ctx context.Context) error {
	return nil
}

func (r *JSONFileRepository) readFile(name string, out interface{}) error {
	b, err := os.ReadFile(filepath.Join(r.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %v", name, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to parse %s: %v", name, err)
	}
	return nil
}

func (r *JSONFileRepository) writeFile(name string, doc interface{}) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(r.dataDir, name), b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %v", name, err)
	}
	return nil
}

func (r *JSONFileRepository) readUsers() (*usersDocument, error) {
	doc := &usersDocument{Users: make(map[string]models.User)}
	if err := r.readFile(usersFile, doc); err != nil {
		return nil, err
	}
	if doc.Users == nil {
		doc.Users = make(map[string]models.User)
	}
	return doc, nil
}

func (r *JSONFileRepository) GetUser(ctx context.Context, username string) (*models.User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	doc, err := r.readUsers()
	if err != nil {
		return nil, err
	}
	user, ok := doc.Users[username]
	if !ok {
		return nil, &ErrNotFound{}
	}
	return &user, nil
}

func (r *JSONFileRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	doc, err := r.readUsers()
	if err != nil {
		return err
	}
	if _, ok := doc.Users[user.Username]; ok {
		return &ErrAlreadyExists{}
	}
	doc.Users[user.Username] = *user
	return r.writeFile(usersFile, doc)
}

func (r *JSONFileRepository) SaveUser(ctx context.Context, user *models.User) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	doc, err := r.readUsers()
	if err != nil {
		return err
	}
	if _, ok := doc.Users[user.Username]; !ok {
		return &ErrNotFound{}
	}
	doc.Users[user.Username] = *user
	return r.writeFile(usersFile, doc)
}

func (r *JSONFileRepository) CountUsers(ctx context.Context) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	doc, err := r.readUsers()
	if err != nil {
		return 0, err
	}
	return len(doc.Users), nil
}

func (r *JSONFileRepository) ListBuildings(ctx context.Context) ([]models.Building, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	doc := &buildingsDocument{}
	if err := r.readFile(buildingsFile, doc); err != nil {
		return nil, err
	}
	return doc.Buildings, nil
}

func (r *JSONFileRepository) SaveBuildings(ctx context.Context, buildings []models.Building) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.writeFile(buildingsFile, &buildingsDocument{Buildings: buildings})
}

func (r *JSONFileRepository) ListResources(ctx context.Context) ([]models.Resource, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	doc := &resourcesDocument{}
	if err := r.readFile(resourcesFile, doc); err != nil {
		return nil, err
	}
	return doc.Resources, nil
}

func (r *JSONFileRepository) SaveResources(ctx context.Context, resources []models.Resource) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.writeFile(resourcesFile, &resourcesDocument{Resources: resources})
}
