package catalog

import (
	"encoding/json"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte = 1024 * 1024
	// resolutions only change when the catalog does, and a catalog is immutable
	resolutionNoExpire = 0
)

// Resolution is the catalog's verdict for a single exercise name.
type Resolution struct {
	Category        Category `json:"category"`
	CategoryMatched bool     `json:"categoryMatched"`
	MuscleGroups    []string `json:"muscleGroups"`
	MusclesMatched  bool     `json:"musclesMatched"`
}

// Resolver memoizes name resolution on top of a Catalog. Request handlers see
// the same handful of exercise names over and over, so the ordered rule scan
// runs once per distinct name.
type Resolver struct {
	*Catalog
	cache *freecache.Cache
}

func NewResolver(c *Catalog, cacheSizeMB int) *Resolver {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 1
	}
	return &Resolver{
		Catalog: c,
		cache:   freecache.NewCache(cacheSizeMB * megabyte),
	}
}

func (r *Resolver) Resolve(exerciseName string) Resolution {
	key := Normalize(exerciseName)

	if cached, err := r.cache.Get([]byte(key)); err == nil {
		var res Resolution
		if err := json.Unmarshal(cached, &res); err == nil {
			return res
		}
		log.Tracef("catalog resolver, corrupt cache entry for [%s]", key)
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Tracef("catalog resolver, cache get [%s]: %s", key, err)
	}

	cat, catMatched := r.Catalog.category(key)
	groups, musclesMatched := r.Catalog.muscleGroups(key)
	res := Resolution{
		Category:        cat,
		CategoryMatched: catMatched,
		MuscleGroups:    groups,
		MusclesMatched:  musclesMatched,
	}
	if !catMatched || !musclesMatched {
		log.Debugf("catalog resolver, [%s] unclassified (category matched: %t, muscles matched: %t)", key, catMatched, musclesMatched)
	}

	if encoded, err := json.Marshal(res); err == nil {
		if err := r.cache.Set([]byte(key), encoded, resolutionNoExpire); err != nil {
			log.Tracef("catalog resolver, cache set [%s]: %s", key, err)
		}
	}

	return res
}

func (r *Resolver) Category(exerciseName string) Category {
	return r.Resolve(exerciseName).Category
}

func (r *Resolver) MuscleGroups(exerciseName string) []string {
	return r.Resolve(exerciseName).MuscleGroups
}

// CachedNames is the number of distinct names resolved so far.
func (r *Resolver) CachedNames() int64 {
	return r.cache.EntryCount()
}
