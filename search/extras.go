package search

// Extras is the opaque key-value record attached to a Target or an Action.
// A nil Extras reads as empty.
type Extras map[string]any

// Get returns the raw value stored under key.
func (e Extras) Get(key string) (any, bool) {
	if e == nil {
		return nil, false
	}
	v, ok := e[key]
	return v, ok
}

// GetString returns the string stored under key, or "" if absent or not a string.
func (e Extras) GetString(key string) string {
	v, _ := e.Get(key)
	s, _ := v.(string)
	return s
}

// GetBool returns the bool stored under key, or false if absent or not a bool.
func (e Extras) GetBool(key string) bool {
	v, _ := e.Get(key)
	b, _ := v.(bool)
	return b
}

// GetInt returns the integer stored under key. JSON-decoded numbers are accepted.
func (e Extras) GetInt(key string) (int, bool) {
	v, ok := e.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// PutBool stores a bool. It panics on a nil map, like any map write; use
// Target.PutExtra to allocate on demand.
func (e Extras) PutBool(key string, v bool) { e[key] = v }

// PutString stores a string.
func (e Extras) PutString(key, v string) { e[key] = v }

// Target extras keys. The string values are an interop contract shared with
// the producers of search results and must not change.
const (
	// On-device data.
	ExtraClass                 = "class"
	ExtraQuickLaunch           = "quick_launch"
	ExtraGroupID               = "group_id"
	ExtraGroupDecorateTogether = "decorate_together"
	ExtraSliceTitle            = "slice_title"
	ExtraUseFullHeight         = "use_full_height"
	ExtraIsNonTappable         = "is_non_tappable"
	ExtraTitleOverwrite        = "title_overwrite"
	ExtraSubtitleOverride      = "subtitle_override"
	ExtraIsQueryCorrected      = "is_query_corrected"
	ExtraResultMatchUserTyped  = "result_match_user_typed"
	ExtraStartTimestamp        = "start_timestamp"
	ExtraResultAppGridX        = "app_gridx"
	ExtraBlobstoreHandle       = "blobstore_handle_key"

	// Web data.
	ExtraProxyWebItem             = "proxy_web_item"
	ExtraEntity                   = "is_entity"
	ExtraAnswer                   = "is_answer"
	ExtraResponseID               = "response_id"
	ExtraLearnMoreURL             = "learn_more_url"
	ExtraPersonal                 = "is_personal"
	ExtraSuggestionType           = "suggestion_type"
	ExtraSuggestRenderText        = "suggest_render_text"
	ExtraZeroStateCache           = "zero_state_cache"
	ExtraTallCardHeader           = "tall_card_header"
	ExtraTallCardImageDescription = "tall_card_image_description"
	ExtraBitmapURL                = "bitmap_url"
	ExtraWebSuggestionCount       = "web_sug_count"

	// ExtraShouldFillContainerWidth makes thumbnails stretch to the container
	// width when fewer than the maximum are shown. Only read for thumbnail layouts.
	ExtraShouldFillContainerWidth = "should_fill_container_width"
	// ExtraHideLabel hides the target label when true.
	ExtraHideLabel            = "hide_label"
	ExtraSuggestionActionText = "suggestion_action_text"
	ExtraSuggestionActionRPC  = "suggestion_action_rpc"
	ExtraSupportQueryBuilder  = "support_query_builder"
	ExtraSuggestRawText       = "suggest_raw_text"
	ExtraSuggestTruncateStart = "suggest_truncate_start"
)

// DecoratorType is a bitset describing how a target is decorated with its neighbours.
type DecoratorType int

// Grouping is set when targets sharing a group id are decorated together.
const Grouping DecoratorType = 1 << 1

// BlobHandle identifies a thumbnail asset held in a shared blob store.
type BlobHandle struct {
	Algorithm  string `json:"algorithm"`
	Digest     []byte `json:"digest"`
	Label      string `json:"label,omitempty"`
	ExpiryTime int64  `json:"expiry_time,omitempty"`
	Tag        string `json:"tag,omitempty"`
}

func extrasOf(t *Target) Extras {
	if t == nil {
		return nil
	}
	return t.Extras
}

// DecoratorID returns the group id of t, or "" when t or its extras are nil.
func DecoratorID(t *Target) string {
	return extrasOf(t).GetString(ExtraGroupID)
}

// DecoratorTypeOf returns the decoration bits of t.
func DecoratorTypeOf(t *Target) DecoratorType {
	var typ DecoratorType
	if DecoratorID(t) != "" {
		typ |= Grouping
	}
	return typ
}

// IsBlobstoreAsset reports whether t carries a blob store thumbnail handle.
// Both in-process handles and the object form DecodeTargets produces count.
func IsBlobstoreAsset(t *Target) bool {
	v, _ := extrasOf(t).Get(ExtraBlobstoreHandle)
	switch h := v.(type) {
	case BlobHandle:
		return true
	case *BlobHandle:
		return h != nil
	case map[string]any:
		_, alg := h["algorithm"]
		_, digest := h["digest"]
		return alg || digest
	default:
		return false
	}
}

// IsEntity reports whether t is a web entity result.
func IsEntity(t *Target) bool {
	return extrasOf(t).GetBool(ExtraEntity)
}

// IsAnswer reports whether t is a web answer result.
func IsAnswer(t *Target) bool {
	return extrasOf(t).GetBool(ExtraAnswer)
}

// IsRichAnswer reports whether t is an answer rendered as a tall image card.
func IsRichAnswer(t *Target) bool {
	return IsAnswer(t) && t.LayoutType == LayoutTallCardWithImageNoIcon
}
