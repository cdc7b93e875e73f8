package search

// Action extras keys, read from Action.Extras.
const (
	ActionExtraHideSubtitle              = "hide_subtitle"
	ActionExtraHideIcon                  = "hide_icon"
	ActionExtraAllowPinning              = "allow_pinning"
	ActionExtraBadgeWithPackage          = "badge_with_package"
	ActionExtraPrimaryIconFromTitle      = "primary_icon_from_title"
	ActionExtraIsSearchInApp             = "is_search_in_app"
	ActionExtraBadgeWithComponentName    = "badge_with_component_name"
	ActionExtraIconCacheKey              = "icon_cache_key"
	ActionExtraShouldStart               = "should_start"
	ActionExtraShouldStartForResult      = "should_start_for_result"
	ActionExtraSuggestOpenDefaultBrowser = "suggest_open_default_browser"
)

// Action is what happens when the user taps a target.
type Action struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Intent   string `json:"intent,omitempty"`
	Extras   Extras `json:"extras,omitempty"`
}

// HideSubtitle reports whether the subtitle row should be hidden.
func (a *Action) HideSubtitle() bool { return a != nil && a.Extras.GetBool(ActionExtraHideSubtitle) }

// HideIcon reports whether the action icon should be hidden.
func (a *Action) HideIcon() bool { return a != nil && a.Extras.GetBool(ActionExtraHideIcon) }

// AllowPinning reports whether the result may be pinned to the workspace.
func (a *Action) AllowPinning() bool { return a != nil && a.Extras.GetBool(ActionExtraAllowPinning) }

// IconCacheKey returns the component key the launcher icon cache should be
// queried with, or "" when the action supplies its own icon.
func (a *Action) IconCacheKey() string {
	if a == nil {
		return ""
	}
	return a.Extras.GetString(ActionExtraIconCacheKey)
}
