package controller_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	xl := excelize.NewFile()
	defer xl.Close()

	sheet := xl.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := xl.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func importRequest(t *testing.T, workbook *bytes.Buffer) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "cafes.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(workbook.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/cafes/import", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestBulkImportCafes(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.adminCookie(t)

	workbook := buildWorkbook(t, [][]string{
		{"name", "address", "description", "facilities"},
		{"Blue Bottle", "123 Main", "cozy", `{"wifi":true}`},
		{"", "missing name", "skipped"},
		{"Ratio", "45 Oak", "bright", ""},
	})

	req := importRequest(t, workbook)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	cafes, err := env.store.LoadCafes()
	if err != nil {
		t.Fatal(err)
	}
	if len(cafes) != 2 {
		t.Fatalf("expected 2 imported cafes, got %d", len(cafes))
	}
	if cafes[0].Name != "Blue Bottle" || cafes[1].Name != "Ratio" {
		t.Errorf("unexpected imports: %+v", cafes)
	}
	if cafes[0].ID == cafes[1].ID {
		t.Error("imported cafes must get distinct ids")
	}
	if wifi, _ := cafes[0].Facilities["wifi"].(bool); !wifi {
		t.Errorf("facilities column not decoded: %v", cafes[0].Facilities)
	}
}

func TestBulkImportRequiresFile(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.adminCookie(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/cafes/import", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBulkImportRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	workbook := buildWorkbook(t, [][]string{
		{"name", "address", "description"},
		{"A", "B", "C"},
	})
	req := importRequest(t, workbook)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
