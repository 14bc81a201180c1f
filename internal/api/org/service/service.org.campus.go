package service

import (
	"context"
	"fmt"
	"strings"

	basesvc "facility_works/internal/api/base/service"
	orgmodels "facility_works/internal/api/org/models"
	"facility_works/internal/common"
	"facility_works/internal/global"
)

// CampusService quản lý cây tổ chức campus - tòa nhà - tầng - phòng ban.
type CampusService struct {
	*basesvc.BaseServiceMongoImpl[orgmodels.Campus]
}

// NewCampusService tạo service cây tổ chức.
func NewCampusService() (*CampusService, error) {
	colName := global.MongoDB_ColNames.Campuses
	collection, ok := global.RegistryCollections.Get(colName)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", colName, common.ErrNotFound)
	}

	return &CampusService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[orgmodels.Campus](collection),
	}, nil
}

// ListCampuses trả về toàn bộ cây tổ chức.
func (s *CampusService) ListCampuses(ctx context.Context) ([]orgmodels.Campus, error) {
	return s.Find(ctx, nil, nil)
}

// FindOffice duyệt cây theo đường dẫn campus/building/floor/office.
// Mỗi bậc không tìm thấy trả về lỗi nêu rõ bậc đó.
func FindOffice(campuses []orgmodels.Campus, campusName, buildingName, floorName, officeName string) (*orgmodels.Office, error) {
	var campus *orgmodels.Campus
	for i := range campuses {
		if strings.EqualFold(campuses[i].Name, campusName) {
			campus = &campuses[i]
			break
		}
	}
	if campus == nil {
		return nil, fmt.Errorf("không tìm thấy campus %q: %w", campusName, common.ErrNotFound)
	}

	var building *orgmodels.Building
	for i := range campus.Buildings {
		if strings.EqualFold(campus.Buildings[i].Name, buildingName) {
			building = &campus.Buildings[i]
			break
		}
	}
	if building == nil {
		return nil, fmt.Errorf("không tìm thấy tòa nhà %q trong campus %q: %w", buildingName, campus.Name, common.ErrNotFound)
	}

	var floor *orgmodels.Floor
	for i := range building.Floors {
		if strings.EqualFold(building.Floors[i].Name, floorName) {
			floor = &building.Floors[i]
			break
		}
	}
	if floor == nil {
		return nil, fmt.Errorf("không tìm thấy tầng %q trong tòa nhà %q: %w", floorName, building.Name, common.ErrNotFound)
	}

	for i := range floor.Offices {
		if strings.EqualFold(floor.Offices[i].Name, officeName) {
			return &floor.Offices[i], nil
		}
	}
	return nil, fmt.Errorf("không tìm thấy phòng ban %q trên tầng %q: %w", officeName, floor.Name, common.ErrNotFound)
}

// BuildOfficeLookup làm phẳng cây tổ chức thành map tra cứu theo tên phòng
// ban đã lowercase. Dùng cho đối chiếu phòng ban trong phân tích dữ liệu.
func BuildOfficeLookup(campuses []orgmodels.Campus) map[string]orgmodels.OfficeLocation {
	lookup := make(map[string]orgmodels.OfficeLocation)
	for _, campus := range campuses {
		for _, building := range campus.Buildings {
			for _, floor := range building.Floors {
				for _, office := range floor.Offices {
					key := strings.ToLower(strings.TrimSpace(office.Name))
					if key == "" {
						continue
					}
					lookup[key] = orgmodels.OfficeLocation{
						Campus:   campus.Name,
						Building: building.Name,
						Floor:    floor.Name,
						Office:   office.Name,
					}
				}
			}
		}
	}
	return lookup
}

// ResolveOffice tra cứu phòng ban theo tên, không phân biệt hoa thường.
// Khi không khớp chính xác, thử khớp chứa chuỗi theo cả hai chiều để các
// cách ghi tắt thông dụng vẫn đối chiếu được.
func ResolveOffice(lookup map[string]orgmodels.OfficeLocation, name string) (orgmodels.OfficeLocation, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return orgmodels.OfficeLocation{}, false
	}

	if loc, ok := lookup[key]; ok {
		return loc, true
	}

	for candidate, loc := range lookup {
		if strings.Contains(candidate, key) || strings.Contains(key, candidate) {
			return loc, true
		}
	}
	return orgmodels.OfficeLocation{}, false
}
