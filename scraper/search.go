package scraper

import (
	"fmt"
	"net/url"
	"strconv"
)

// BuildSearchURL builds the people-search URL for a job title with an
// optional free-text location. The location goes in as its own parameter;
// no geo taxonomy lookup is attempted.
func BuildSearchURL(searchBase, jobTitle, location string) string {
	params := url.Values{}
	params.Set("keywords", jobTitle)
	params.Set("origin", "GLOBAL_SEARCH_HEADER")
	if location != "" {
		params.Set("location", location)
	}
	return searchBase + "?" + params.Encode()
}

// BuildPagedSearchURL builds the structured search URL with exact-phrase
// keywords and an explicit page number. Network filters like ["F","S"]
// restrict results to 1st/2nd degree connections.
func BuildPagedSearchURL(searchBase, jobTitle string, page int, network []string) string {
	params := url.Values{}
	params.Set("keywords", fmt.Sprintf("%q", jobTitle))
	params.Set("origin", "GLOBAL_SEARCH_HEADER")
	params.Set("sid", "search")
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	if len(network) > 0 {
		networkParam := "["
		for i, n := range network {
			if i > 0 {
				networkParam += ","
			}
			networkParam += fmt.Sprintf("%q", n)
		}
		networkParam += "]"
		params.Set("network", networkParam)
	}
	return searchBase + "?" + params.Encode()
}
