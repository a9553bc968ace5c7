package model

import "encoding/xml"

const NamespaceNCX = "http://www.daisy.org/z3986/2005/ncx/"

type TocNCX struct {
	XMLName  xml.Name   `xml:"ncx"`
	Xmlns    string     `xml:"xmlns,attr"`
	Version  string     `xml:"version,attr"`
	Head     TocNCXHead `xml:"head"`
	DocTitle string     `xml:"docTitle>text"`
	NavMap   NavMap     `xml:"navMap"`
}

func (n *TocNCX) Marshal() (string, error) {
	xmlBytes, err := xml.MarshalIndent(n, "", "  ")
	if err != nil {
		return "", err
	}
	return string(xmlBytes), nil
}

type TocNCXHead struct {
	Meta []TocNCXHeadMeta `xml:"meta"`
}

type TocNCXHeadMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type NavPoint struct {
	Id        string          `xml:"id,attr"`
	PlayOrder int             `xml:"playOrder,attr"`
	Label     string          `xml:"navLabel>text"`
	Content   NavPointContent `xml:"content"`
}

type NavPointContent struct {
	Src string `xml:"src,attr"`
}

type NavMap struct {
	Points []*NavPoint `xml:"navPoint"`
}
