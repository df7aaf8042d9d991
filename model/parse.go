package model

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ErrNoEntity means a payload parsed correctly but contained no recognized
// entity record. The service answers requests for nonexistent identifiers
// with such payloads.
var ErrNoEntity = errors.New("payload contains no entity record")

// element is a minimal parsed XML element tree. The ptools-xml format is
// consumed by walking schema-defined paths, so no per-element types are
// needed.
type element struct {
	name     string
	attrs    map[string]string
	text     string
	children []*element
}

func (e *element) attr(name string) string {
	return e.attrs[name]
}

// find returns the first direct child with the given name.
func (e *element) find(name string) *element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// findAll returns all direct children with the given name.
func (e *element) findAll(name string) []*element {
	var out []*element
	for _, c := range e.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func decodeTree(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)
	// The service declares ISO-8859-1 on some pages; pass text through
	// unconverted rather than fail on the declaration.
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	root := &element{}
	stack := []*element{root}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local}
			if len(t.Attr) > 0 {
				el.attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.attrs[a.Name.Local] = a.Value
				}
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			cur := stack[len(stack)-1]
			cur.text += string(t)
		}
	}
	if len(root.children) == 0 {
		return nil, ErrNoEntity
	}
	return root.children[0], nil
}

// ParseEntity parses a ptools-xml payload into the record's kind and raw
// attribute mapping. Attributes the payload does not carry are simply absent;
// extraction never fails on missing elements. ErrNoEntity is returned when
// the payload holds no element matching a known entity schema.
func ParseEntity(r io.Reader) (Kind, Attributes, error) {
	doc, err := decodeTree(r)
	if err != nil {
		return KindUnknown, nil, err
	}

	var kind Kind
	var rec *element
	for _, c := range doc.children {
		if k, ok := KnownKind(c.name); ok {
			kind = k
			rec = c
			break
		}
	}
	if rec == nil {
		return KindUnknown, nil, ErrNoEntity
	}

	attrs := make(Attributes)
	for _, def := range Schema(kind) {
		if def.elem == "" {
			continue
		}
		switch {
		case def.Name == AttrDBLinks:
			extractDBLinks(rec, attrs)
		case def.Type == AttrScalar:
			extractScalar(rec, def, attrs)
		case def.Type == AttrScalarList:
			extractScalarList(rec, def, attrs)
		case def.Type == AttrRefList:
			extractRefList(rec, def, attrs)
		}
	}

	// The combined reaction list preserves the original right-then-left
	// ordering of the source record.
	if kind == KindCompound {
		right, _ := attrs.Refs(AttrReactionsRight)
		left, _ := attrs.Refs(AttrReactionsLeft)
		if len(right)+len(left) > 0 {
			all := make([]string, 0, len(right)+len(left))
			all = append(all, right...)
			all = append(all, left...)
			attrs[AttrReactions] = Value{Type: AttrRefList, List: all}
		}
	}

	// A record without a common name displays by its last synonym.
	if _, ok := attrs.Scalar(AttrCommonName); !ok {
		if syns, ok := attrs.List(AttrSynonyms); ok && len(syns) > 0 {
			attrs[AttrCommonName] = Value{Type: AttrScalar, Scalar: syns[len(syns)-1]}
		}
	}

	return kind, attrs, nil
}

func extractScalar(rec *element, def AttrDef, attrs Attributes) {
	el := rec.find(def.elem)
	if el == nil {
		return
	}
	text := strings.TrimSpace(el.text)
	if text == "" {
		return
	}
	attrs[def.Name] = Value{Type: AttrScalar, Scalar: text}
}

func extractScalarList(rec *element, def AttrDef, attrs Attributes) {
	var list []string
	for _, el := range rec.findAll(def.elem) {
		if text := strings.TrimSpace(el.text); text != "" {
			list = append(list, text)
		}
	}
	if list != nil {
		attrs[def.Name] = Value{Type: AttrScalarList, List: list}
	}
}

func extractRefList(rec *element, def AttrDef, attrs Attributes) {
	var ids []string
	for _, el := range rec.findAll(def.elem) {
		for _, c := range el.children {
			if def.child != "" && c.name != def.child {
				continue
			}
			if id := c.attr("frameid"); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if ids != nil {
		attrs[def.Name] = Value{Type: AttrRefList, List: ids}
	}
}

// extractDBLinks stores cross-database links as "DB:OID" pairs.
func extractDBLinks(rec *element, attrs Attributes) {
	var links []string
	for _, el := range rec.findAll("dblink") {
		db := el.find("dblink-db")
		oid := el.find("dblink-oid")
		if db == nil || oid == nil {
			continue
		}
		dbName := strings.TrimSpace(db.text)
		oidText := strings.TrimSpace(oid.text)
		if dbName == "" || oidText == "" {
			continue
		}
		links = append(links, dbName+":"+oidText)
	}
	if links != nil {
		attrs[AttrDBLinks] = Value{Type: AttrScalarList, List: links}
	}
}

// SplitDBLink splits a stored "DB:OID" pair.
func SplitDBLink(link string) (db, oid string) {
	db, oid, _ = strings.Cut(link, ":")
	return db, oid
}
