package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/tvshelf/tvshelf/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketFavorites = []byte("favorites")
)

// Ensure FavoritesStore implements domain.FavoritesStore at compile time.
var _ domain.FavoritesStore = (*FavoritesStore)(nil)

// FavoritesStore implements domain.FavoritesStore using BoltDB.
// With an empty path it keeps rows in memory only.
type FavoritesStore struct {
	db *bolt.DB

	mu  sync.RWMutex // Protects mem
	mem map[int]domain.FavoriteShow
}

// NewFavoritesStore opens (creating if needed) the favorites database at path.
func NewFavoritesStore(path string) (*FavoritesStore, error) {
	if path == "" {
		return &FavoritesStore{mem: make(map[int]domain.FavoriteShow)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &domain.StoreError{Op: "open", Err: err}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, &domain.StoreError{Op: "open", Err: fmt.Errorf("failed to open bolt db: %w", err)}
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFavorites)
		return err
	})
	if err != nil {
		db.Close()
		return nil, &domain.StoreError{Op: "open", Err: err}
	}

	return &FavoritesStore{db: db}, nil
}

func (s *FavoritesStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put upserts fav; a row with the same id is replaced.
func (s *FavoritesStore) Put(fav domain.FavoriteShow) error {
	key, err := favoriteKey(fav.ID)
	if err != nil {
		return &domain.StoreError{Op: "put favorite", Err: err}
	}

	if s.db == nil {
		s.mu.Lock()
		s.mem[fav.ID] = fav
		s.mu.Unlock()
		return nil
	}

	data, err := json.Marshal(fav)
	if err != nil {
		return &domain.StoreError{Op: "put favorite", Err: err}
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFavorites).Put(key, data)
	})
	if err != nil {
		return &domain.StoreError{Op: "put favorite", Err: err}
	}
	return nil
}

// Delete removes the row keyed by fav.ID. Deleting an absent row succeeds.
func (s *FavoritesStore) Delete(fav domain.FavoriteShow) error {
	key, err := favoriteKey(fav.ID)
	if err != nil {
		return &domain.StoreError{Op: "delete favorite", Err: err}
	}

	if s.db == nil {
		s.mu.Lock()
		delete(s.mem, fav.ID)
		s.mu.Unlock()
		return nil
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFavorites).Delete(key)
	})
	if err != nil {
		return &domain.StoreError{Op: "delete favorite", Err: err}
	}
	return nil
}

// Get returns the row for id
func (s *FavoritesStore) Get(id int) (domain.FavoriteShow, bool, error) {
	key, err := favoriteKey(id)
	if err != nil {
		return domain.FavoriteShow{}, false, &domain.StoreError{Op: "get favorite", Err: err}
	}

	if s.db == nil {
		s.mu.RLock()
		fav, ok := s.mem[id]
		s.mu.RUnlock()
		return fav, ok, nil
	}

	var data []byte
	err = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketFavorites).Get(key); v != nil {
			// Values are only valid for the life of the transaction
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return domain.FavoriteShow{}, false, &domain.StoreError{Op: "get favorite", Err: err}
	}
	if data == nil {
		return domain.FavoriteShow{}, false, nil
	}

	var fav domain.FavoriteShow
	if err := json.Unmarshal(data, &fav); err != nil {
		return domain.FavoriteShow{}, false, &domain.StoreError{Op: "get favorite", Err: err}
	}
	return fav, true, nil
}

// All returns every row ordered by id. The result is a snapshot taken
// inside a single read transaction.
func (s *FavoritesStore) All() ([]domain.FavoriteShow, error) {
	if s.db == nil {
		s.mu.RLock()
		favs := make([]domain.FavoriteShow, 0, len(s.mem))
		for _, fav := range s.mem {
			favs = append(favs, fav)
		}
		s.mu.RUnlock()
		sort.Slice(favs, func(i, j int) bool { return favs[i].ID < favs[j].ID })
		return favs, nil
	}

	favs := []domain.FavoriteShow{}
	err := s.db.View(func(tx *bolt.Tx) error {
		// Big-endian keys make cursor order match id order
		return tx.Bucket(bucketFavorites).ForEach(func(k, v []byte) error {
			var fav domain.FavoriteShow
			if err := json.Unmarshal(v, &fav); err != nil {
				return fmt.Errorf("decode favorite %d: %w", binary.BigEndian.Uint64(k), err)
			}
			favs = append(favs, fav)
			return nil
		})
	})
	if err != nil {
		return nil, &domain.StoreError{Op: "list favorites", Err: err}
	}
	return favs, nil
}

func favoriteKey(id int) ([]byte, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidShowID, id)
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key, nil
}
