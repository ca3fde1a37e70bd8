package element

import "testing"

func TestCatalog_Name(t *testing.T) {
	catalog := NewCatalog([]Element{
		{ID: 233, WebName: "Salah", FirstName: "Mohamed", SecondName: "Salah"},
		{ID: 7, FirstName: "Bukayo", SecondName: "Saka"},
		{ID: 0, WebName: "ignored"},
	})

	if catalog.Len() != 2 {
		t.Fatalf("expected two catalog entries, got %d", catalog.Len())
	}
	if got := catalog.Name(233); got != "Salah" {
		t.Fatalf("unexpected name: %q", got)
	}
	if got := catalog.Name(7); got != "Bukayo Saka" {
		t.Fatalf("unexpected fallback name: %q", got)
	}
	if got := catalog.Name(999); got != "999" {
		t.Fatalf("unexpected unknown name: %q", got)
	}
	if elems := catalog.Elements(); elems[0].ID != 7 || elems[1].ID != 233 {
		t.Fatalf("expected elements sorted by id, got %+v", elems)
	}
}
