// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import (
	"context"
	"fmt"
	"time"
)

// DefaultCooldownWindow is the trailing period during which a previously
// shown item is excluded from re-selection.
const DefaultCooldownWindow = 7 * 24 * time.Hour

// cooldownPolicy computes the exclusion set of (item id, media kind) pairs
// shown to a user within the trailing window. An item stays excluded no
// matter which list it came from or whether its status changed since.
type cooldownPolicy struct {
	store  Store
	window time.Duration
}

func newCooldownPolicy(store Store, window time.Duration) *cooldownPolicy {
	if window <= 0 {
		window = DefaultCooldownWindow
	}
	return &cooldownPolicy{store: store, window: window}
}

// ExclusionSet returns the keys of all selection events recorded for the
// user at or after now minus the window.
func (p *cooldownPolicy) ExclusionSet(ctx context.Context, userID int64, now time.Time) (map[SelectionKey]struct{}, error) {
	since := now.Add(-p.window)
	keys, err := p.store.RecentSelectionKeys(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent selections: %w", err)
	}

	exclusions := make(map[SelectionKey]struct{}, len(keys))
	for _, key := range keys {
		exclusions[key] = struct{}{}
	}
	return exclusions, nil
}
