// Package resx reads the XML resource tables that hold localized description
// templates.
//
// A table looks like:
//
//	<resources>
//	  <language code="en-US">
//	    <string key="once">Occurs once.</string>
//	  </language>
//	</resources>
package resx

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

const (
	TagResources = "resources"
	TagLanguage  = "language"
	TagString    = "string"

	AttrCode = "code"
	AttrKey  = "key"
)

// Table maps a language code to its key/template pairs.
type Table map[string]map[string]string

// Get returns the template stored for key in the given language.
func (t Table) Get(code, key string) (string, bool) {
	entries, ok := t[code]
	if !ok {
		return "", false
	}
	s, ok := entries[key]
	return s, ok
}

// Parse reads a resource table from r.
func Parse(r io.Reader) (Table, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("resx: reading document: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument builds a table from an already parsed document.
func FromDocument(doc *etree.Document) (Table, error) {
	if doc == nil || doc.Root() == nil {
		return nil, fmt.Errorf("resx: empty document")
	}

	root := doc.Root()
	if root.Tag != TagResources {
		return nil, fmt.Errorf("resx: invalid root tag: %s", root.Tag)
	}

	table := make(Table)
	for _, lang := range root.SelectElements(TagLanguage) {
		code := lang.SelectAttrValue(AttrCode, "")
		if code == "" {
			return nil, fmt.Errorf("resx: language element without %q attribute", AttrCode)
		}

		entries, ok := table[code]
		if !ok {
			entries = make(map[string]string)
			table[code] = entries
		}

		for _, s := range lang.SelectElements(TagString) {
			key := s.SelectAttrValue(AttrKey, "")
			if key == "" {
				return nil, fmt.Errorf("resx: %s: string element without %q attribute", code, AttrKey)
			}
			if _, dup := entries[key]; dup {
				return nil, fmt.Errorf("resx: %s: duplicate key %q", code, key)
			}
			entries[key] = s.Text()
		}
	}

	return table, nil
}

// ToXML renders the table back into a document. Languages and keys are
// written in the order given by codes and keys.
func (t Table) ToXML(codes []string, keys []string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(TagResources)

	for _, code := range codes {
		entries, ok := t[code]
		if !ok {
			continue
		}
		lang := root.CreateElement(TagLanguage)
		lang.CreateAttr(AttrCode, code)
		for _, key := range keys {
			text, ok := entries[key]
			if !ok {
				continue
			}
			s := lang.CreateElement(TagString)
			s.CreateAttr(AttrKey, key)
			s.SetText(text)
		}
	}

	return doc
}
