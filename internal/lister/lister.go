// Package lister discovers candidate result document links on a listing page.
package lister

import "context"

// Link is one candidate anchor found on the results listing page.
type Link struct {
	Href string
	Text string
}

// LinkLister lists anchors on the results page whose href mentions the year.
// Filtering by link text and resolving relative hrefs is the caller's job.
type LinkLister interface {
	ListResultLinks(ctx context.Context, baseURL string, year int) ([]Link, error)
}
