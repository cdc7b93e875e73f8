package search

// LayoutType names the view a target renders into.
type LayoutType string

const (
	LayoutIconSingleVerticalText       LayoutType = "icon"
	LayoutIconHorizontalText           LayoutType = "icon_row"
	LayoutSmallIconHorizontalText      LayoutType = "short_icon_row"
	LayoutSmallIconHorizontalTextThumb LayoutType = "short_icon_row_thumbnail"
	LayoutIconSlice                    LayoutType = "slice"
	LayoutWidgetPreview                LayoutType = "widget_preview"
	LayoutWidgetLive                   LayoutType = "widget_live"
	LayoutPeopleTile                   LayoutType = "people_tile"
	LayoutTextHeader                   LayoutType = "header"
	LayoutTextHeaderRow                LayoutType = "text_header_row"
	LayoutEmptyDivider                 LayoutType = "divider"
	LayoutSectionHeader                LayoutType = "section_header"
	LayoutThumbnail                    LayoutType = "thumbnail"
	LayoutThumbnailContainer           LayoutType = "thumbnail_container"
	LayoutBigIconMediumHeightRow       LayoutType = "big_icon_medium_row"
	LayoutTallCardWithImageNoIcon      LayoutType = "tall_card_with_image_no_icon"
	LayoutPlaceholder                  LayoutType = "placeholder"
	LayoutRichAnswerPlaceholder        LayoutType = "richanswer_placeholder"
)

// IsPlaceholder reports whether l is one of the transient insertion markers.
func (l LayoutType) IsPlaceholder() bool {
	return l == LayoutPlaceholder || l == LayoutRichAnswerPlaceholder
}

// isAppIcon reports whether l is one of the layouts an app row uses.
func (l LayoutType) isAppIcon() bool {
	return l == LayoutIconHorizontalText || l == LayoutIconSingleVerticalText
}

// ResultType classifies the corpus a target came from. Values are bit flags
// so a consumer can filter on several corpora at once.
type ResultType int

const (
	ResultUnknown       ResultType = 0
	ResultApplication   ResultType = 1 << 0
	ResultShortcut      ResultType = 1 << 1
	ResultPeople        ResultType = 1 << 2
	ResultAction        ResultType = 1 << 3
	ResultSetting       ResultType = 1 << 4
	ResultImage         ResultType = 1 << 5
	ResultSlice         ResultType = 1 << 6
	ResultWidgets       ResultType = 1 << 7
	ResultPlay          ResultType = 1 << 8
	ResultSuggest       ResultType = 1 << 9
	ResultScreenshot    ResultType = 1 << 10
	ResultNoFulfillment ResultType = 1 << 11
	ResultEducard       ResultType = 1 << 12
	ResultSystemPointer ResultType = 1 << 13
	ResultVideo         ResultType = 1 << 14
	ResultWebSuggest    ResultType = 1 << 15
	ResultFallback      ResultType = 1 << 16
)

// Has reports whether all bits of other are set in r.
func (r ResultType) Has(other ResultType) bool {
	return other != 0 && r&other == other
}
