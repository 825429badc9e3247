package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRectangleZeroValue(t *testing.T) {
	var r Rectangle
	require.Equal(t, 0, r.Top)
	require.Equal(t, 0, r.Right)
	require.Equal(t, 0, r.Bottom)
	require.Equal(t, 0, r.Left)
	require.True(t, r.Valid())
}

func TestRectangleFromPoints(t *testing.T) {
	r := RectangleFromPoints(10, 20, 110, 45)
	require.Equal(t, NewRectangle(20, 110, 45, 10), r)
	require.Equal(t, 100, r.Width())
	require.Equal(t, 25, r.Height())

	// inverted boxes are representable, callers check Valid
	require.False(t, NewRectangle(50, 0, 10, 0).Valid())
}

func TestNewSuccessResp(t *testing.T) {
	file := File{Name: "label.jpg", ContentType: "image/jpeg", Data: []byte{1, 2, 3}}
	rect := NewRectangle(1, 2, 3, 4)

	s := NewSuccessResp("abc", "00340434161094042557", file, rect)
	require.False(t, s.Hidden())
	require.Equal(t, "abc", s.ID)
	require.Equal(t, "00340434161094042557", s.TrackNumber)
	require.Equal(t, file, s.File)
	require.Equal(t, rect, s.Rect)
}

func TestWithHideCopies(t *testing.T) {
	s := NewSuccessResp("abc", "1", File{}, Rectangle{})
	hidden := s.WithHide(true)
	require.True(t, hidden.Hidden())
	require.False(t, s.Hidden())

	f := NewFailResp("def", File{Name: "x.png"})
	require.False(t, f.Hidden())
	require.True(t, f.WithHide(true).Hidden())
	require.False(t, f.Hidden())
}

func TestNewImageResult(t *testing.T) {
	s1 := NewSuccessResp("1", "a", File{}, Rectangle{})
	s2 := NewSuccessResp("2", "b", File{}, Rectangle{})

	res := NewImageResult([]SuccessResp{s1, s2}, []FailResp{})
	require.Len(t, res.Success, 2)
	require.Len(t, res.Fail, 0)
	require.Equal(t, "1", res.Success[0].ID)
	require.Equal(t, "2", res.Success[1].ID)
}

func TestSelectedImage(t *testing.T) {
	file := File{Name: "a.jpg", Data: []byte("hello")}
	sel := SelectedImage{File: file, ID: "id-1"}
	require.Equal(t, file, sel.File)
	require.Equal(t, "id-1", sel.ID)

	derived := NewSelectedImage(file)
	require.Equal(t, "5d41402abc4b2a76b9719d911017c592", derived.ID)
	require.Equal(t, NewBinaryImage(derived.ID, []byte("hello")), derived.Binary())
}

func TestSuccessRespJSON(t *testing.T) {
	s := NewSuccessResp("abc", "123", File{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("xyz")}, NewRectangle(1, 2, 3, 4)).WithHide(true)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id": "abc",
		"track_number": "123",
		"file": {"name": "a.jpg", "content_type": "image/jpeg", "size": 3},
		"rect": {"top": 1, "right": 2, "bottom": 3, "left": 4},
		"hide": true
	}`, string(data))

	var back SuccessResp
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, back.Hidden())
	require.Equal(t, "abc", back.ID)
	require.Equal(t, "a.jpg", back.File.Name)
	require.Equal(t, s.Rect, back.Rect)
}

func TestFailRespJSON(t *testing.T) {
	data, err := json.Marshal(NewFailResp("x", File{Name: "b.png"}))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"x","file":{"name":"b.png","content_type":"","size":0},"hide":false}`, string(data))
}

func TestSelectImagesDisambiguatesDuplicates(t *testing.T) {
	same := []byte("hello")
	selected := SelectImages([]File{
		{Name: "a/label.jpg", Data: same},
		{Name: "other.jpg", Data: []byte("world")},
		{Name: "b/label.jpg", Data: same},
		{Name: "c/label.jpg", Data: same},
	})

	require.Len(t, selected, 4)
	require.Equal(t, "5d41402abc4b2a76b9719d911017c592", selected[0].ID)
	require.Equal(t, "5d41402abc4b2a76b9719d911017c592-2", selected[2].ID)
	require.Equal(t, "5d41402abc4b2a76b9719d911017c592-3", selected[3].ID)
	require.Equal(t, NewSelectedImage(File{Data: []byte("world")}).ID, selected[1].ID)
	require.Equal(t, "b/label.jpg", selected[2].File.Name)
}
