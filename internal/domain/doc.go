// Package domain holds the core entities of the spaced-repetition system:
// users and their learner profiles, the leveled card catalog, per-card
// scheduling state, and the review log. Each entity validates its own
// invariants on construction, keeping that logic independent of storage
// and transport. The srs subpackage wraps the scheduling algorithm itself.
package domain
