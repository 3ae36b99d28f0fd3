package resolver

import (
	"context"
	"encoding/xml"
	"net/url"
	"strings"

	"seqfetch/internal/accession"
	"seqfetch/internal/logging"
)

// Resolve maps a GEO series identifier to the set of run accessions linked to
// it. The chain is strictly sequential: a GEO catalog search, a cross-reference
// into the SRA namespace, and a summary lookup that yields run tokens. An
// empty result at any step short-circuits to an empty final result; only a
// search step that exhausts its retries surfaces as a ResolutionError, since
// nothing downstream can run without its output.
func (c *Client) Resolve(ctx context.Context, series accession.Series) ([]accession.Run, error) {
	catalogIDs, err := c.search(ctx, series)
	if err != nil {
		return nil, &ResolutionError{Series: series, Err: err}
	}
	if len(catalogIDs) == 0 {
		c.logger.Info("no catalog records for series", logging.String("series", string(series)))
		return nil, nil
	}

	archiveIDs, err := c.link(ctx, catalogIDs)
	if err != nil {
		c.logger.Warn("cross-reference unavailable, treating as empty",
			logging.String("series", string(series)), logging.Error(err))
		return nil, nil
	}
	if len(archiveIDs) == 0 {
		c.logger.Info("series has no linked archive records", logging.String("series", string(series)))
		return nil, nil
	}

	runs, err := c.summaries(ctx, archiveIDs)
	if err != nil {
		c.logger.Warn("summary lookup unavailable, treating as empty",
			logging.String("series", string(series)), logging.Error(err))
		return nil, nil
	}
	c.logger.Info("series resolved",
		logging.String("series", string(series)),
		logging.Int("runs", len(runs)))
	return runs, nil
}

type searchResult struct {
	IDs []string `xml:"IdList>Id"`
}

func (c *Client) search(ctx context.Context, series accession.Series) ([]string, error) {
	params := url.Values{
		"db":      {"gds"},
		"term":    {string(series) + "[Accession]"},
		"retmode": {"xml"},
		"retmax":  {"1000"},
	}
	body, err := c.fetch(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}
	var result searchResult
	if err := xml.Unmarshal(body, &result); err != nil {
		c.logger.Warn("malformed search response, treating as empty", logging.Error(err))
		return nil, nil
	}
	return result.IDs, nil
}

type linkResult struct {
	LinkSets []struct {
		Targets []struct {
			DbTo    string   `xml:"DbTo"`
			LinkIDs []string `xml:"Link>Id"`
			ListIDs []string `xml:"IdList>Id"`
		} `xml:"LinkSetDb"`
	} `xml:"LinkSet"`
}

func (c *Client) link(ctx context.Context, catalogIDs []string) ([]string, error) {
	params := url.Values{
		"dbfrom":  {"gds"},
		"db":      {"sra"},
		"id":      {strings.Join(catalogIDs, ",")},
		"retmode": {"xml"},
	}
	body, err := c.fetch(ctx, "elink.fcgi", params)
	if err != nil {
		return nil, err
	}
	var result linkResult
	if err := xml.Unmarshal(body, &result); err != nil {
		c.logger.Warn("malformed link response, treating as empty", logging.Error(err))
		return nil, nil
	}

	var ids []string
	seen := make(map[string]struct{})
	for _, set := range result.LinkSets {
		for _, target := range set.Targets {
			if target.DbTo != "sra" {
				continue
			}
			// The service has shipped both <Link><Id> and plain <IdList>
			// shapes; accept either.
			for _, id := range append(target.LinkIDs, target.ListIDs...) {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

type summaryResult struct {
	DocSums []docSum `xml:"DocSum"`
}

type docSum struct {
	Items []docSumItem `xml:"Item"`
}

type docSumItem struct {
	Name  string       `xml:"Name,attr"`
	Value string       `xml:",chardata"`
	Items []docSumItem `xml:"Item"`
}

func (c *Client) summaries(ctx context.Context, archiveIDs []string) ([]accession.Run, error) {
	params := url.Values{
		"db":      {"sra"},
		"id":      {strings.Join(archiveIDs, ",")},
		"retmode": {"xml"},
	}
	body, err := c.fetch(ctx, "esummary.fcgi", params)
	if err != nil {
		return nil, err
	}
	var result summaryResult
	if err := xml.Unmarshal(body, &result); err != nil {
		c.logger.Warn("malformed summary response, treating as empty", logging.Error(err))
		return nil, nil
	}

	seen := make(map[accession.Run]struct{})
	var runs []accession.Run
	for _, doc := range result.DocSums {
		collectRuns(doc.Items, seen, &runs)
	}
	return runs, nil
}

// collectRuns walks summary items recursively; run tokens live in the free
// text of items named "Run".
func collectRuns(items []docSumItem, seen map[accession.Run]struct{}, runs *[]accession.Run) {
	for _, item := range items {
		if item.Name == "Run" {
			for _, run := range accession.FindRuns(item.Value) {
				if _, ok := seen[run]; ok {
					continue
				}
				seen[run] = struct{}{}
				*runs = append(*runs, run)
			}
		}
		collectRuns(item.Items, seen, runs)
	}
}
