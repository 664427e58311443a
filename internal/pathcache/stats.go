/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathcache

import "fmt"

// Stats is a diagnostic snapshot. Nothing in the cache depends on it.
type Stats struct {
	CachedPaths  int
	HitTolerance float64
	Hits         uint64
	Misses       uint64
	Promotions   uint64
}

// Recomputations counts every routing run: misses plus draw-to-full promotions.
func (s Stats) Recomputations() uint64 { return s.Misses + s.Promotions }

func (s Stats) String() string {
	hitRate := 0.0
	if total := s.Hits + s.Recomputations(); total > 0 {
		hitRate = float64(s.Hits) / float64(total) * 100
	}
	return fmt.Sprintf("PathCache[size=%d, tolerance=%.2f, hits=%d, misses=%d, promotions=%d, hitRate=%.1f%%]",
		s.CachedPaths, s.HitTolerance, s.Hits, s.Misses, s.Promotions, hitRate)
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		CachedPaths:  len(c.entries),
		HitTolerance: c.theme.HitTolerance,
		Hits:         c.hits,
		Misses:       c.misses,
		Promotions:   c.promotions,
	}
}

// Recomputations is Stats().Recomputations().
func (c *Cache) Recomputations() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses + c.promotions
}
