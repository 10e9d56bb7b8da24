// Package cache keeps controller capability snapshots in a JSON file keyed
// by controller address.
package cache

import (
	"io/ioutil"
	"os"
	"sync"

	"github.com/bletio/ble"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Errors.
var (
	ErrExists   = errors.New("cache already contains an entry")
	ErrNotFound = errors.New("entry not found in cache")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fileCache struct {
	filename string
	lock     sync.RWMutex
}

// New returns a cache backed by filename. The file is created on the first
// Store.
func New(filename string) ble.CapabilityCache {
	return &fileCache{filename: filename}
}

func (fc *fileCache) Store(a ble.Address, v interface{}, replace bool) error {
	fc.lock.Lock()
	defer fc.lock.Unlock()

	cache, err := fc.loadExisting()
	if err != nil {
		return err
	}

	key := a.String()
	if _, ok := cache[key]; ok && !replace {
		return errors.Wrapf(ErrExists, "for %s", key)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "can't encode entry for %s", key)
	}
	cache[key] = b

	return fc.storeCache(cache)
}

func (fc *fileCache) Load(a ble.Address, v interface{}) error {
	fc.lock.RLock()
	defer fc.lock.RUnlock()

	cache, err := fc.loadExisting()
	if err != nil {
		return err
	}

	key := a.String()
	b, ok := cache[key]
	if !ok {
		return errors.Wrapf(ErrNotFound, "for %s", key)
	}
	return errors.Wrapf(json.Unmarshal(b, v), "can't decode entry for %s", key)
}

func (fc *fileCache) Clear() error {
	fc.lock.Lock()
	defer fc.lock.Unlock()

	err := os.Remove(fc.filename)
	if os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(err, "can't clear cache")
}

func (fc *fileCache) loadExisting() (map[string]jsoniter.RawMessage, error) {
	in, err := ioutil.ReadFile(fc.filename)
	if os.IsNotExist(err) {
		return map[string]jsoniter.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "can't read cache")
	}

	cache := map[string]jsoniter.RawMessage{}
	if err := json.Unmarshal(in, &cache); err != nil {
		return nil, errors.Wrapf(err, "can't parse %s", fc.filename)
	}
	return cache, nil
}

func (fc *fileCache) storeCache(cache map[string]jsoniter.RawMessage) error {
	out, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return errors.Wrap(ioutil.WriteFile(fc.filename, out, 0644), "can't write cache")
}
