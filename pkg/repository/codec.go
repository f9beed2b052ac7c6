package repository

import (
	"bytes"
	"encoding/json"
	"time"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
)

// wireRecord is the store and response shape of a Record.
// Field order is the order written to the store file.
type wireRecord struct {
	RepoSlug             string `json:"repoSlug"`
	CheckFrequencyDays   int    `json:"checkFrequencyDays"`
	LatestVersion        string `json:"latestVersion"`
	LatestVersionName    string `json:"latestVersionName"`
	LastCheckedTimestamp string `json:"lastCheckedTimestamp"`
	ReleaseURL           string `json:"releaseUrl"`
	RepoURL              string `json:"repoUrl"`
}

// decodeRecord uses pointers to tell missing fields from zero values.
type decodeRecord struct {
	RepoSlug             *string `json:"repoSlug"`
	CheckFrequencyDays   *int    `json:"checkFrequencyDays"`
	LatestVersion        *string `json:"latestVersion"`
	LatestVersionName    *string `json:"latestVersionName"`
	LastCheckedTimestamp *string `json:"lastCheckedTimestamp"`
	ReleaseURL           *string `json:"releaseUrl"`
	RepoURL              *string `json:"repoUrl"`
}

func toWire(r *Record) wireRecord {
	return wireRecord{
		RepoSlug:             r.Slug,
		CheckFrequencyDays:   r.CheckFrequencyDays,
		LatestVersion:        r.LatestVersion,
		LatestVersionName:    r.LatestVersionName,
		LastCheckedTimestamp: r.LastCheckedTimestamp.UTC().Format(TimestampLayout),
		ReleaseURL:           r.ReleaseURL,
		RepoURL:              r.RepoURL,
	}
}

// MarshalJSON encodes r in the store shape, also used in responses.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(r))
}

// Encode serializes records as a pretty-printed JSON array.
func Encode(records []*Record) ([]byte, error) {
	wire := make([]wireRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			return nil, apperrors.Internal(nil, "Cannot encode a nil repository record")
		}
		wire = append(wire, toWire(r))
	}
	data, err := json.MarshalIndent(wire, "", "    ")
	if err != nil {
		return nil, apperrors.Internal(err, "Could not encode repository store")
	}
	return data, nil
}

// Decode parses a JSON array of records. Any malformed record fails the
// whole input.
func Decode(data []byte) ([]*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var raw []decodeRecord
	if err := dec.Decode(&raw); err != nil {
		return nil, apperrors.Internal(err, "Could not decode repository store: %v", err)
	}
	if dec.More() {
		return nil, apperrors.Internal(nil, "Could not decode repository store: trailing data")
	}

	out := make([]*Record, 0, len(raw))
	for i, d := range raw {
		r, err := fromDecoded(d)
		if err != nil {
			return nil, apperrors.Internal(err, "Could not decode record #%d of repository store", i)
		}
		out = append(out, r)
	}
	return out, nil
}

// DecodeRecord parses one record object.
func DecodeRecord(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var d decodeRecord
	if err := dec.Decode(&d); err != nil {
		return nil, apperrors.Internal(err, "Could not decode repository record: %v", err)
	}
	return fromDecoded(d)
}

func fromDecoded(d decodeRecord) (*Record, error) {
	missing := ""
	switch {
	case d.RepoSlug == nil:
		missing = "repoSlug"
	case d.CheckFrequencyDays == nil:
		missing = "checkFrequencyDays"
	case d.LatestVersion == nil:
		missing = "latestVersion"
	case d.LatestVersionName == nil:
		missing = "latestVersionName"
	case d.LastCheckedTimestamp == nil:
		missing = "lastCheckedTimestamp"
	case d.ReleaseURL == nil:
		missing = "releaseUrl"
	case d.RepoURL == nil:
		missing = "repoUrl"
	}
	if missing != "" {
		return nil, apperrors.Internal(nil, "Repository record lacks the %q field", missing)
	}

	slug, err := Normalize(*d.RepoSlug, false)
	if err != nil {
		return nil, err
	}
	ts, err := time.ParseInLocation(TimestampLayout, *d.LastCheckedTimestamp, time.UTC)
	if err != nil {
		return nil, apperrors.Internal(err, "Invalid lastCheckedTimestamp %q for %s", *d.LastCheckedTimestamp, slug)
	}

	r := &Record{
		Slug:                 slug,
		LatestVersion:        *d.LatestVersion,
		LatestVersionName:    *d.LatestVersionName,
		LastCheckedTimestamp: ts,
		ReleaseURL:           *d.ReleaseURL,
		RepoURL:              *d.RepoURL,
	}
	if err := r.SetCheckFrequencyDays(*d.CheckFrequencyDays); err != nil {
		return nil, err
	}
	return r, nil
}
