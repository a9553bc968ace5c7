package model

import "encoding/xml"

const (
	NamespaceDC  = "http://purl.org/dc/elements/1.1/"
	NamespaceOPF = "http://www.idpf.org/2007/opf"
)

type DublinCoreMetadata struct {
	XMLName  xml.Name `xml:"metadata"`
	XmlnsDC  string   `xml:"xmlns:dc,attr"`
	XmlnsOPF string   `xml:"xmlns:opf,attr"`

	Titles       []DCTitle       `xml:"dc:title"`
	Creators     []DCCreator     `xml:"dc:creator"`
	Identifiers  []DCIdentifier  `xml:"dc:identifier"`
	Languages    []DCLanguage    `xml:"dc:language"`
	Descriptions []DCDescription `xml:"dc:description,omitempty"`
	Subjects     []DCSubject     `xml:"dc:subject,omitempty"`
	Dates        []DCDate        `xml:"dc:date,omitempty"`

	Metas []DublinCoreMeta `xml:"meta,omitempty"`
}

func (d *DublinCoreMetadata) Marshal() (string, error) {
	xmlBytes, err := xml.MarshalIndent(d, "  ", "  ")
	if err != nil {
		return "", err
	}
	return string(xmlBytes), nil
}

type DCTitle struct {
	Value string `xml:",chardata"`
}

type DCIdentifier struct {
	Value string `xml:",chardata"`
	ID    string `xml:"id,attr,omitempty"`
}

type DCLanguage struct {
	Value string `xml:",chardata"`
}

type DCCreator struct {
	Value string `xml:",chardata"`
	Role  string `xml:"opf:role,attr,omitempty"` // "aut" for the story author
}

type DCDate struct {
	Value string `xml:",chardata"`
	Event string `xml:"opf:event,attr,omitempty"` // publication, modification
}

type DCDescription struct {
	Value string `xml:",chardata"`
}

type DCSubject struct {
	Value string `xml:",chardata"`
}

type DublinCoreMeta struct {
	Name    string `xml:"name,attr,omitempty"`
	Content string `xml:"content,attr,omitempty"`
}

type Manifest struct {
	XMLName xml.Name       `xml:"manifest"`
	Items   []ManifestItem `xml:"item"`
}

func (m *Manifest) Marshal() (string, error) {
	xmlBytes, err := xml.MarshalIndent(m, "  ", "  ")
	if err != nil {
		return "", err
	}
	return string(xmlBytes), nil
}

type ManifestItem struct {
	ID    string `xml:"id,attr"`
	Link  string `xml:"href,attr"`
	Media string `xml:"media-type,attr"`
}

type Spine struct {
	XMLName xml.Name    `xml:"spine"`
	Toc     string      `xml:"toc,attr,omitempty"`
	Items   []SpineItem `xml:"itemref"`
}

func (s *Spine) Marshal() (string, error) {
	xmlBytes, err := xml.MarshalIndent(s, "  ", "  ")
	if err != nil {
		return "", err
	}
	return string(xmlBytes), nil
}

type SpineItem struct {
	IDref string `xml:"idref,attr"`
}
