package service

import (
	"errors"
	"strings"
	"testing"

	orgmodels "facility_works/internal/api/org/models"
	"facility_works/internal/common"
)

func testCampuses() []orgmodels.Campus {
	return []orgmodels.Campus{
		{
			Name: "Main Campus",
			Buildings: []orgmodels.Building{
				{
					Name: "Science Building",
					Floors: []orgmodels.Floor{
						{
							Name:    "Third Floor",
							Offices: []orgmodels.Office{{Name: "Physics Lab"}},
						},
					},
				},
			},
		},
	}
}

func TestFindOffice_Success(t *testing.T) {
	office, err := FindOffice(testCampuses(), "main campus", "SCIENCE BUILDING", "Third Floor", "physics lab")
	if err != nil {
		t.Fatalf("tra cứu không phân biệt hoa thường phải thành công: %v", err)
	}
	if office.Name != "Physics Lab" {
		t.Errorf("tên phòng ban không đúng: %q", office.Name)
	}
}

func TestFindOffice_ErrorNamesMissingLevel(t *testing.T) {
	cases := []struct {
		campus, building, floor, office string
		wantInMessage                   string
	}{
		{"Ghost Campus", "Science Building", "Third Floor", "Physics Lab", "campus"},
		{"Main Campus", "Ghost Building", "Third Floor", "Physics Lab", "tòa nhà"},
		{"Main Campus", "Science Building", "Ghost Floor", "Physics Lab", "tầng"},
		{"Main Campus", "Science Building", "Third Floor", "Ghost Office", "phòng ban"},
	}

	for _, tc := range cases {
		_, err := FindOffice(testCampuses(), tc.campus, tc.building, tc.floor, tc.office)
		if err == nil {
			t.Fatalf("đường dẫn sai ở bậc %q phải trả về lỗi", tc.wantInMessage)
		}
		if !errors.Is(err, common.ErrNotFound) {
			t.Errorf("lỗi phải wrap ErrNotFound, nhận: %v", err)
		}
		if !strings.Contains(err.Error(), tc.wantInMessage) {
			t.Errorf("thông báo lỗi phải nêu rõ bậc %q, nhận: %q", tc.wantInMessage, err.Error())
		}
	}
}

func TestBuildOfficeLookup(t *testing.T) {
	lookup := BuildOfficeLookup(testCampuses())

	loc, ok := lookup["physics lab"]
	if !ok {
		t.Fatal("lookup phải chứa key đã lowercase")
	}
	if loc.Campus != "Main Campus" || loc.Building != "Science Building" || loc.Floor != "Third Floor" {
		t.Errorf("vị trí không đúng: %+v", loc)
	}
}
