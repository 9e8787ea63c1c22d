package domain

import "strings"

type PackageCategory string

const (
	PackageDomestic  PackageCategory = "domestic"
	PackageDedicated PackageCategory = "dedicated"
	PackageRoaming   PackageCategory = "roaming"
)

func (c PackageCategory) Icon() string {
	switch c {
	case PackageDomestic:
		return "🇨🇳"
	case PackageDedicated:
		return "📺"
	default:
		return "🌎"
	}
}

// AddOnPackage is one itemized data package attached to an account.
type AddOnPackage struct {
	Title string
	Items []AddOnItem
}

// Category classifies the package by keywords in its title.
func (p AddOnPackage) Category() PackageCategory {
	switch {
	case strings.Contains(p.Title, "国内"):
		return PackageDomestic
	case strings.Contains(p.Title, "专用"):
		return PackageDedicated
	default:
		return PackageRoaming
	}
}

// AddOnItem is one line inside a package. Items with InfiniteTitle set are
// unlimited and carry their usage in the Infinite* fields.
type AddOnItem struct {
	Title         string
	InfiniteTitle string
	InfiniteValue string
	InfiniteUnit  string
	LeftTitle     string
	LeftHighlight string
	RightCommon   string
}

func (i AddOnItem) Unlimited() bool {
	return i.InfiniteTitle != ""
}
