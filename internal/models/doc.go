// Package models defines the core domain entities for the marketplace.
//
// # Entities
//
//   - Account: a registered identity with a role (member or admin)
//   - Property: a listed property with a buy-once status
//   - Offer: a purchase offer on a property (pending until settled or rejected)
//   - CartEntry: a selected catalog item awaiting settlement
//   - Payment: an immutable settlement record referencing cart entries
//   - MenuItem: a catalog item with a category and price
//   - Review: buyer feedback on a property
//
// # Design Principles
//
//  1. **Store-owned state**: every entity is addressed by an opaque id; no
//     component caches authoritative state across requests.
//  2. **Terminal statuses**: Property and Offer statuses only move forward;
//     once bought or rejected they never transition again.
//  3. **Avoid circular references**: relationships use id strings rather
//     than pointers.
package models
