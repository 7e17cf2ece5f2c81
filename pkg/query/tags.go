/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package query

import (
	"fmt"
	"strconv"

	"github.com/spjmurray/go-util/pkg/set"
)

// TagType names a kind of cached entity e.g. "Posts".
type TagType string

type tagIDKind int

const (
	tagIDAny tagIDKind = iota
	tagIDEntity
	tagIDList
)

// TagID selects which entities of a type a tag refers to.  The zero value
// refers to every entity of the type.
type TagID struct {
	kind tagIDKind
	id   int64
}

// ListID refers to the collection as a whole, rather than any member of it.
//
//nolint:gochecknoglobals
var ListID = TagID{kind: tagIDList}

// ID refers to a single entity.
func ID(id int64) TagID {
	return TagID{
		kind: tagIDEntity,
		id:   id,
	}
}

// IsList returns true for the collection sentinel.
func (t TagID) IsList() bool {
	return t.kind == tagIDList
}

// IsAny returns true if the ID matches every entity of its type.
func (t TagID) IsAny() bool {
	return t.kind == tagIDAny
}

// Entity returns the entity ID, if any.
func (t TagID) Entity() (int64, bool) {
	return t.id, t.kind == tagIDEntity
}

func (t TagID) String() string {
	switch t.kind {
	case tagIDEntity:
		return strconv.FormatInt(t.id, 10)
	case tagIDList:
		return "LIST"
	case tagIDAny:
	}

	return "*"
}

// Tag is provided by queries and invalidated by mutations.
type Tag struct {
	Type TagType
	ID   TagID
}

// NewTag is shorthand for a tag of a type and ID.
func NewTag(t TagType, id TagID) Tag {
	return Tag{
		Type: t,
		ID:   id,
	}
}

func (t Tag) String() string {
	return fmt.Sprintf("%s:%s", t.Type, t.ID)
}

// Matches returns true if invalidating one tag should invalidate the other.
func (t Tag) Matches(o Tag) bool {
	if t.Type != o.Type {
		return false
	}

	if t.ID.IsAny() || o.ID.IsAny() {
		return true
	}

	return t.ID == o.ID
}

// matchesAny returns true if the tag matches any of the given tags.
func (t Tag) matchesAny(tags []Tag) bool {
	for _, o := range tags {
		if t.Matches(o) {
			return true
		}
	}

	return false
}

// tagTypes returns the set of types referenced by a list of tags.
func tagTypes(tags []Tag) set.Set[TagType] {
	types := make([]TagType, len(tags))

	for i := range tags {
		types[i] = tags[i].Type
	}

	return set.New[TagType](types...)
}
